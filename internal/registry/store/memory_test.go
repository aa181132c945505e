package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"landregistry/internal/deed/models"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newDeed(number string) models.Deed {
	now := time.Now()
	return models.Deed{
		ID:              uuid.New(),
		DeedNumber:      number,
		OwnerID:         uuid.New(),
		PropertyAddress: "14 Harbour Road",
		PropertyType:    "commercial",
		LandArea:        900,
		LandAreaUnit:    "sqm",
		Status:          models.DeedStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *MemoryStoreSuite) TestInsertAndFind() {
	s.Run("round-trips by id and by number", func() {
		deed := s.newDeed("LD-1001")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		byID, err := s.store.FindByID(s.ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(deed.DeedNumber, byID.DeedNumber)

		byNumber, err := s.store.FindByNumber(s.ctx, "LD-1001")
		s.Require().NoError(err)
		s.Equal(deed.ID, byNumber.ID)
	})

	s.Run("rejects duplicate id and duplicate number", func() {
		deed := s.newDeed("LD-1002")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		s.ErrorIs(s.store.Insert(s.ctx, deed), sentinel.ErrConflict)

		other := s.newDeed("LD-1002") // fresh id, same number
		s.ErrorIs(s.store.Insert(s.ctx, other), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown records", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByNumber(s.ctx, "LD-NONE")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestUpdate() {
	s.Run("applies partial update and stamps verification time", func() {
		deed := s.newDeed("LD-2001")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		at := time.Now().Add(time.Hour)
		ctx := requestcontext.WithTime(s.ctx, at)

		verifier := uuid.New()
		status := models.DeedStatusVerified
		got, err := s.store.Update(ctx, deed.ID, models.DeedUpdate{
			Status:     &status,
			VerifiedBy: &verifier,
		})
		s.Require().NoError(err)
		s.Equal(models.DeedStatusVerified, got.Status)
		s.Require().NotNil(got.VerifiedAt)
		s.Equal(at, *got.VerifiedAt)
		s.Equal(at, got.UpdatedAt)
		s.Equal(deed.PropertyAddress, got.PropertyAddress)
	})

	s.Run("status-only update leaves verification fields unset", func() {
		deed := s.newDeed("LD-2002")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		status := models.DeedStatusRejected
		got, err := s.store.Update(s.ctx, deed.ID, models.DeedUpdate{Status: &status})
		s.Require().NoError(err)
		s.Nil(got.VerifiedBy)
		s.Nil(got.VerifiedAt)
	})

	s.Run("returns ErrNotFound for missing deed", func() {
		status := models.DeedStatusVerified
		_, err := s.store.Update(s.ctx, uuid.New(), models.DeedUpdate{Status: &status})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("status change on a settled deed fails", func() {
		deed := s.newDeed("LD-2003")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		verified := models.DeedStatusVerified
		_, err := s.store.Update(s.ctx, deed.ID, models.DeedUpdate{Status: &verified})
		s.Require().NoError(err)

		rejected := models.DeedStatusRejected
		_, err = s.store.Update(s.ctx, deed.ID, models.DeedUpdate{Status: &rejected})
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)

		got, err := s.store.FindByID(s.ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(models.DeedStatusVerified, got.Status, "the first decision stands")
	})
}

// TestConcurrentStatusDecisions races opposite decisions on one pending deed.
// The recheck under the write lock admits exactly one.
func (s *MemoryStoreSuite) TestConcurrentStatusDecisions() {
	deed := s.newDeed("LD-2100")
	s.Require().NoError(s.store.Insert(s.ctx, deed))

	statuses := []models.DeedStatus{models.DeedStatusVerified, models.DeedStatusRejected}
	const racers = 10
	var wg sync.WaitGroup
	var wins, invalid atomic.Int32

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := statuses[i%2]
			_, err := s.store.Update(s.ctx, deed.ID, models.DeedUpdate{Status: &status})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, sentinel.ErrInvalidState):
				invalid.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load(), "exactly one decision lands")
	s.Equal(int32(racers-1), invalid.Load())

	got, err := s.store.FindByID(s.ctx, deed.ID)
	s.Require().NoError(err)
	s.NotEqual(models.DeedStatusPending, got.Status)
}

func (s *MemoryStoreSuite) TestTransferOwner() {
	s.Run("reassigns ownership when expectation holds", func() {
		deed := s.newDeed("LD-3001")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		newOwner := uuid.New()
		got, err := s.store.TransferOwner(s.ctx, models.Transfer{
			ID:          uuid.New(),
			DeedID:      deed.ID,
			FromOwnerID: deed.OwnerID,
			ToOwnerID:   newOwner,
			Reason:      "sale",
		})
		s.Require().NoError(err)
		s.Equal(newOwner, got.OwnerID)
		s.Equal(models.DeedStatusTransferred, got.Status)
	})

	s.Run("stale expected owner fails and leaves the row untouched", func() {
		deed := s.newDeed("LD-3002")
		s.Require().NoError(s.store.Insert(s.ctx, deed))

		_, err := s.store.TransferOwner(s.ctx, models.Transfer{
			ID:          uuid.New(),
			DeedID:      deed.ID,
			FromOwnerID: uuid.New(), // not the owner
			ToOwnerID:   uuid.New(),
		})
		s.Require().ErrorIs(err, sentinel.ErrOwnershipMismatch)

		got, err := s.store.FindByID(s.ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(deed.OwnerID, got.OwnerID)
		s.Equal(models.DeedStatusPending, got.Status)
	})
}

func (s *MemoryStoreSuite) TestLists() {
	owner := uuid.New()
	for i := 0; i < 3; i++ {
		deed := s.newDeed("LD-4" + uuid.NewString()[:8])
		deed.OwnerID = owner
		deed.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		s.Require().NoError(s.store.Insert(s.ctx, deed))
	}
	other := s.newDeed("LD-OTHER")
	s.Require().NoError(s.store.Insert(s.ctx, other))

	s.Run("filters by owner, oldest first", func() {
		deeds, err := s.store.ListByOwner(s.ctx, owner)
		s.Require().NoError(err)
		s.Require().Len(deeds, 3)
		s.True(deeds[0].CreatedAt.Before(deeds[2].CreatedAt))
	})

	s.Run("filters by status", func() {
		pending, err := s.store.ListByStatus(s.ctx, models.DeedStatusPending)
		s.Require().NoError(err)
		s.Len(pending, 4)

		verified, err := s.store.ListByStatus(s.ctx, models.DeedStatusVerified)
		s.Require().NoError(err)
		s.Empty(verified)
	})
}

func (s *MemoryStoreSuite) TestVerificationRequests() {
	deed := s.newDeed("LD-5001")
	s.Require().NoError(s.store.Insert(s.ctx, deed))

	newRequest := func(kind models.VerificationKind) models.VerificationRequest {
		return models.VerificationRequest{
			ID:          uuid.New(),
			DeedID:      deed.ID,
			RequesterID: deed.OwnerID,
			Kind:        kind,
			Status:      models.RequestStatusPending,
			CreatedAt:   time.Now(),
		}
	}

	s.Run("stores and finds a pending request", func() {
		req := newRequest(models.VerificationKindOwnership)
		s.Require().NoError(s.store.CreateRequest(s.ctx, req))

		got, err := s.store.FindRequest(s.ctx, req.ID)
		s.Require().NoError(err)
		s.Equal(models.RequestStatusPending, got.Status)
	})

	s.Run("rejects a second pending request for the same deed and kind", func() {
		err := s.store.CreateRequest(s.ctx, newRequest(models.VerificationKindOwnership))
		s.ErrorIs(err, sentinel.ErrConflict)

		// A different kind is fine.
		s.NoError(s.store.CreateRequest(s.ctx, newRequest(models.VerificationKindHistory)))
	})

	s.Run("processing is first-wins", func() {
		req := newRequest(models.VerificationKindAuthenticity)
		s.Require().NoError(s.store.CreateRequest(s.ctx, req))

		official := uuid.New()
		at := time.Now()
		got, err := s.store.ProcessRequest(s.ctx, req.ID, models.RequestStatusApproved, official, "checked against survey", at)
		s.Require().NoError(err)
		s.Equal(models.RequestStatusApproved, got.Status)
		s.Require().NotNil(got.ProcessedBy)
		s.Equal(official, *got.ProcessedBy)
		s.Require().NotNil(got.ResponseDetails)
		s.Equal("checked against survey", *got.ResponseDetails)

		_, err = s.store.ProcessRequest(s.ctx, req.ID, models.RequestStatusRejected, uuid.New(), "", at)
		s.ErrorIs(err, sentinel.ErrAlreadyProcessed)
	})

	s.Run("processing an unknown request is a miss", func() {
		_, err := s.store.ProcessRequest(s.ctx, uuid.New(), models.RequestStatusApproved, uuid.New(), "", time.Now())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("once a pending request is decided a new one may open", func() {
		reopened := newRequest(models.VerificationKindAuthenticity)
		s.NoError(s.store.CreateRequest(s.ctx, reopened))
	})

	s.Run("lists requests for a deed oldest first", func() {
		reqs, err := s.store.ListRequestsByDeed(s.ctx, deed.ID)
		s.Require().NoError(err)
		s.Require().NotEmpty(reqs)
		for i := 1; i < len(reqs); i++ {
			s.False(reqs[i].CreatedAt.Before(reqs[i-1].CreatedAt))
		}
	})
}

func (s *MemoryStoreSuite) TestVerificationLogs() {
	deedID := uuid.New()

	for i := 0; i < 2; i++ {
		err := s.store.AppendLog(s.ctx, models.VerificationLog{
			ID:         uuid.New(),
			DeedID:     deedID,
			VerifierID: uuid.New(),
			Kind:       models.VerificationKindOwnership,
			Result:     models.RequestStatusApproved,
			Notes:      "ownership confirmed",
			Timestamp:  time.Now(),
		})
		s.Require().NoError(err)
	}

	logs, err := s.store.ListLogsByDeed(s.ctx, deedID)
	s.Require().NoError(err)
	s.Len(logs, 2)

	empty, err := s.store.ListLogsByDeed(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(empty)
}
