package service_test

//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks
//go:generate mockgen -source=verification.go -destination=mocks/verification_mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"landregistry/internal/deed/models"
	"landregistry/internal/docstore"
	"landregistry/internal/ledger"
	"landregistry/internal/ledger/gateway"
	"landregistry/internal/registry/service"
	"landregistry/internal/registry/service/mocks"
	"landregistry/internal/registry/store"
	"landregistry/pkg/contenthash"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite

	now     time.Time
	deeds   *store.Memory
	docs    *docstore.Memory
	gateway *gateway.Gateway
	svc     *service.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.deeds = store.NewMemory()
	s.docs = docstore.NewMemory()
	s.gateway = gateway.New(context.Background(), ledger.NewInMemory(),
		gateway.WithLogger(slog.New(slog.DiscardHandler)))
	s.svc = service.New(s.deeds, s.deeds, s.docs, s.gateway,
		service.WithLogger(slog.New(slog.DiscardHandler)))
}

func (s *ServiceSuite) ctx(actor uuid.UUID, role models.Role) context.Context {
	ctx := requestcontext.WithActorID(context.Background(), actor)
	ctx = requestcontext.WithActorRole(ctx, role)
	return requestcontext.WithTime(ctx, s.now)
}

func createReq(owner uuid.UUID, number string) *models.CreateDeedRequest {
	return &models.CreateDeedRequest{
		DeedNumber:      number,
		OwnerID:         owner,
		PropertyAddress: "12 Harbor Lane",
		PropertyType:    "residential",
		LandArea:        420.5,
		LandAreaUnit:    "sqm",
	}
}

func (s *ServiceSuite) mustCreate(ctx context.Context, req *models.CreateDeedRequest) models.Deed {
	s.T().Helper()
	res, err := s.svc.CreateDeed(ctx, req)
	s.Require().NoError(err)
	return res.Deed
}

func (s *ServiceSuite) TestCreateDeed() {
	owner := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)

	s.Run("with attachment", func() {
		req := createReq(owner, "DN-1001")
		req.Attachment = []byte("scanned title document")

		res, err := s.svc.CreateDeed(ctx, req)
		s.Require().NoError(err)

		s.Equal(models.DeedStatusPending, res.Deed.Status)
		s.Equal(owner, res.Deed.OwnerID)
		s.Equal(contenthash.Sum(req.Attachment), res.Deed.DocumentHash)
		s.NotEmpty(res.Deed.DocumentAddress)
		s.Equal(service.LegLive, res.DocumentStatus)
		s.Equal(service.LegLive, res.LedgerStatus)
		s.NotEmpty(res.LedgerTxID)
		s.Equal(s.now, res.Deed.CreatedAt)
	})

	s.Run("without attachment", func() {
		res, err := s.svc.CreateDeed(ctx, createReq(owner, "DN-1002"))
		s.Require().NoError(err)
		s.Equal(service.LegSkipped, res.DocumentStatus)
		s.Empty(res.Deed.DocumentHash)
	})

	s.Run("duplicate deed number", func() {
		_, err := s.svc.CreateDeed(ctx, createReq(owner, "DN-1001"))
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("missing property address", func() {
		req := createReq(owner, "DN-1003")
		req.PropertyAddress = "  "
		_, err := s.svc.CreateDeed(ctx, req)
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	s.Run("citizen registering for someone else", func() {
		_, err := s.svc.CreateDeed(ctx, createReq(uuid.New(), "DN-1004"))
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("bank official may not register", func() {
		bank := uuid.New()
		_, err := s.svc.CreateDeed(s.ctx(bank, models.RoleBankOfficial), createReq(bank, "DN-1005"))
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("official registering for a citizen", func() {
		res, err := s.svc.CreateDeed(s.ctx(uuid.New(), models.RoleOfficial), createReq(uuid.New(), "DN-1006"))
		s.Require().NoError(err)
		s.Equal(models.DeedStatusPending, res.Deed.Status)
	})
}

func (s *ServiceSuite) TestCreateDeedDocumentStoreDown() {
	ctrl := gomock.NewController(s.T())
	docs := mocks.NewMockDocumentStore(ctrl)
	docs.EXPECT().Put(gomock.Any(), gomock.Any()).Return(docstore.PutResult{}, sentinel.ErrUnavailable)

	svc := service.New(s.deeds, s.deeds, docs, s.gateway,
		service.WithLogger(slog.New(slog.DiscardHandler)))

	owner := uuid.New()
	req := createReq(owner, "DN-2001")
	req.Attachment = []byte("scanned title document")

	res, err := svc.CreateDeed(s.ctx(owner, models.RoleCitizen), req)
	s.Require().NoError(err, "a document store outage must not block registration")

	s.Equal(service.LegDegraded, res.DocumentStatus)
	s.Equal(contenthash.Sum(req.Attachment), res.Deed.DocumentHash, "hash is computed locally, not by the backend")
	s.Empty(res.Deed.DocumentAddress)

	stored, err := s.deeds.FindByNumber(context.Background(), "DN-2001")
	s.Require().NoError(err)
	s.Equal(res.Deed.ID, stored.ID)
}

func (s *ServiceSuite) TestGetDeed() {
	owner := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ctx, createReq(owner, "DN-3001"))

	s.Run("by id", func() {
		got, err := s.svc.GetDeed(ctx, deed.ID.String())
		s.Require().NoError(err)
		s.Equal(deed.ID, got.Deed.ID)
	})

	s.Run("by deed number", func() {
		got, err := s.svc.GetDeed(ctx, "DN-3001")
		s.Require().NoError(err)
		s.Equal(deed.ID, got.Deed.ID)
	})

	s.Run("carries the latest ledger audit entry", func() {
		got, err := s.svc.GetDeed(ctx, deed.ID.String())
		s.Require().NoError(err)
		s.Equal(service.LegLive, got.LedgerStatus)
		s.Require().NotNil(got.LedgerEntry)
		s.Equal(deed.ID, got.LedgerEntry.Deed.ID)
		s.NotEmpty(got.LedgerEntry.TxID)
	})

	s.Run("deed the ledger never saw reads fine without an entry", func() {
		orphan := deed
		orphan.ID = uuid.New()
		orphan.DeedNumber = "DN-3002"
		s.Require().NoError(s.deeds.Insert(context.Background(), orphan))

		got, err := s.svc.GetDeed(ctx, "DN-3002")
		s.Require().NoError(err)
		s.Nil(got.LedgerEntry)
		s.Equal(service.LegSkipped, got.LedgerStatus)
	})

	s.Run("unknown reference", func() {
		_, err := s.svc.GetDeed(ctx, "DN-9999")
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestListDeedsByOwner() {
	owner := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	s.mustCreate(ctx, createReq(owner, "DN-4001"))
	s.mustCreate(ctx, createReq(owner, "DN-4002"))

	s.Run("owner lists own deeds", func() {
		deeds, err := s.svc.ListDeedsByOwner(ctx, owner)
		s.Require().NoError(err)
		s.Len(deeds, 2)
	})

	s.Run("citizen listing another owner", func() {
		_, err := s.svc.ListDeedsByOwner(s.ctx(uuid.New(), models.RoleCitizen), owner)
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("official listing any owner", func() {
		deeds, err := s.svc.ListDeedsByOwner(s.ctx(uuid.New(), models.RoleOfficial), owner)
		s.Require().NoError(err)
		s.Len(deeds, 2)
	})
}

func (s *ServiceSuite) TestTransferDeed() {
	owner := uuid.New()
	buyer := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ctx, createReq(owner, "DN-5001"))

	s.Run("citizen who is not the owner", func() {
		_, err := s.svc.TransferDeed(s.ctx(uuid.New(), models.RoleCitizen), &models.TransferDeedRequest{
			DeedID: deed.ID, FromOwnerID: owner, ToOwnerID: buyer,
		})
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("wrong from owner", func() {
		stranger := uuid.New()
		_, err := s.svc.TransferDeed(s.ctx(stranger, models.RoleCitizen), &models.TransferDeedRequest{
			DeedID: deed.ID, FromOwnerID: stranger, ToOwnerID: buyer,
		})
		s.Equal(dErrors.CodeOwnershipMismatch, dErrors.CodeOf(err))
	})

	s.Run("owner transfers", func() {
		res, err := s.svc.TransferDeed(ctx, &models.TransferDeedRequest{
			DeedID: deed.ID, FromOwnerID: owner, ToOwnerID: buyer, Reason: "sale",
		})
		s.Require().NoError(err)
		s.Equal(buyer, res.Deed.OwnerID)
		s.Equal(models.DeedStatusTransferred, res.Deed.Status)
		s.Equal(service.LegLive, res.LedgerStatus)
		s.NotEmpty(res.LedgerTxID)
	})

	s.Run("stale from owner after transfer", func() {
		_, err := s.svc.TransferDeed(ctx, &models.TransferDeedRequest{
			DeedID: deed.ID, FromOwnerID: owner, ToOwnerID: uuid.New(),
		})
		s.Equal(dErrors.CodeOwnershipMismatch, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestTransferBlockedByLiveLedgerMismatch() {
	owner := uuid.New()
	buyer := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ctx, createReq(owner, "DN-5101"))

	ctrl := gomock.NewController(s.T())
	ledgerMock := mocks.NewMockLedgerGateway(ctrl)
	ledgerOwner := uuid.New()
	ledgerMock.EXPECT().GetDeed(gomock.Any(), deed.ID).Return(
		&models.Deed{ID: deed.ID, OwnerID: ledgerOwner},
		gateway.Receipt{Backend: gateway.BackendLive},
		nil,
	)

	svc := service.New(s.deeds, s.deeds, s.docs, ledgerMock,
		service.WithLogger(slog.New(slog.DiscardHandler)))

	_, err := svc.TransferDeed(ctx, &models.TransferDeedRequest{
		DeedID: deed.ID, FromOwnerID: owner, ToOwnerID: buyer,
	})
	s.Equal(dErrors.CodeOwnershipMismatch, dErrors.CodeOf(err))

	current, err := s.deeds.FindByID(context.Background(), deed.ID)
	s.Require().NoError(err)
	s.Equal(owner, current.OwnerID, "a blocked transfer must not touch the canonical record")
}

func (s *ServiceSuite) TestTransferWithDegradedLedger() {
	owner := uuid.New()
	buyer := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ctx, createReq(owner, "DN-5201"))

	ctrl := gomock.NewController(s.T())
	ledgerMock := mocks.NewMockLedgerGateway(ctrl)
	// Mock backend never saw this deed; the canonical check alone decides.
	ledgerMock.EXPECT().GetDeed(gomock.Any(), deed.ID).Return(
		nil, gateway.Receipt{Backend: gateway.BackendMock, Degraded: true}, sentinel.ErrNotFound,
	)
	ledgerMock.EXPECT().TransferDeed(gomock.Any(), gomock.Any()).Return(
		gateway.Receipt{Backend: gateway.BackendMock, TxID: "mocktx-00000001", Degraded: true}, nil,
	)

	svc := service.New(s.deeds, s.deeds, s.docs, ledgerMock,
		service.WithLogger(slog.New(slog.DiscardHandler)))

	res, err := svc.TransferDeed(ctx, &models.TransferDeedRequest{
		DeedID: deed.ID, FromOwnerID: owner, ToOwnerID: buyer,
	})
	s.Require().NoError(err)
	s.Equal(buyer, res.Deed.OwnerID)
	s.Equal(service.LegDegraded, res.LedgerStatus)
	s.Equal("mocktx-00000001", res.LedgerTxID)
}

func (s *ServiceSuite) TestGetDeedHistory() {
	owner := uuid.New()
	buyer := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ctx, createReq(owner, "DN-6001"))

	_, err := s.svc.TransferDeed(ctx, &models.TransferDeedRequest{
		DeedID: deed.ID, FromOwnerID: owner, ToOwnerID: buyer,
	})
	s.Require().NoError(err)

	s.Run("full trail", func() {
		res, err := s.svc.GetDeedHistory(ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(service.LegLive, res.LedgerStatus)
		s.Require().Len(res.Entries, 2)
		s.Equal(owner, res.Entries[0].Deed.OwnerID)
		s.Equal(buyer, res.Entries[1].Deed.OwnerID)
		s.Less(res.Entries[0].Sequence, res.Entries[1].Sequence)
	})

	s.Run("unknown deed", func() {
		_, err := s.svc.GetDeedHistory(ctx, uuid.New())
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *ServiceSuite) TestGetDeedStats() {
	owner := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)
	s.mustCreate(ctx, createReq(owner, "DN-7001"))
	s.mustCreate(ctx, createReq(owner, "DN-7002"))

	s.Run("citizen forbidden", func() {
		_, err := s.svc.GetDeedStats(ctx)
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("official sees counts", func() {
		res, err := s.svc.GetDeedStats(s.ctx(uuid.New(), models.RoleAdmin))
		s.Require().NoError(err)
		s.Equal(2, res.Stats.Total)
		s.Equal(2, res.Stats.ByStatus[models.DeedStatusPending])
	})
}

func (s *ServiceSuite) TestGetDocument() {
	owner := uuid.New()
	ctx := s.ctx(owner, models.RoleCitizen)

	req := createReq(owner, "DN-8001")
	req.Attachment = []byte("scanned title document")
	deed := s.mustCreate(ctx, req)

	s.Run("round trip", func() {
		data, err := s.svc.GetDocument(ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(req.Attachment, data)
	})

	s.Run("deed without document", func() {
		bare := s.mustCreate(ctx, createReq(owner, "DN-8002"))
		_, err := s.svc.GetDocument(ctx, bare.ID)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("content no longer matches recorded hash", func() {
		ctrl := gomock.NewController(s.T())
		docs := mocks.NewMockDocumentStore(ctrl)
		docs.EXPECT().Get(gomock.Any(), deed.DocumentAddress).Return([]byte("tampered"), nil)

		svc := service.New(s.deeds, s.deeds, docs, s.gateway,
			service.WithLogger(slog.New(slog.DiscardHandler)))
		_, err := svc.GetDocument(ctx, deed.ID)
		s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))
	})
}
