//go:build integration

package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"landregistry/internal/deed/models"
	"landregistry/internal/ledger"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/testutil/containers"
)

type RedisLedgerSuite struct {
	suite.Suite
	container *containers.RedisContainer
	ledger    *ledger.Redis
	ctx       context.Context
}

func TestRedisLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLedgerSuite))
}

func (s *RedisLedgerSuite) SetupSuite() {
	s.ctx = context.Background()
	s.container = containers.NewRedisContainer(s.T())
	s.ledger = ledger.NewRedis(s.container.Client)
}

func (s *RedisLedgerSuite) SetupTest() {
	s.Require().NoError(s.container.FlushAll(s.ctx))
}

func (s *RedisLedgerSuite) newDeed(number string) models.Deed {
	return models.Deed{
		ID:              uuid.New(),
		DeedNumber:      number,
		OwnerID:         uuid.New(),
		PropertyAddress: "7 Quarry Lane",
		PropertyType:    "residential",
		LandArea:        250,
		LandAreaUnit:    "sqm",
		Status:          models.DeedStatusPending,
	}
}

func (s *RedisLedgerSuite) TestCreateAndLookups() {
	deed := s.newDeed("LD-1001")
	txID, err := s.ledger.CreateDeed(s.ctx, deed)
	s.Require().NoError(err)
	s.NotEmpty(txID)

	s.Run("by id", func() {
		got, err := s.ledger.GetDeed(s.ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(deed.DeedNumber, got.DeedNumber)
	})

	s.Run("by number", func() {
		got, err := s.ledger.GetDeedByNumber(s.ctx, "LD-1001")
		s.Require().NoError(err)
		s.Equal(deed.ID, got.ID)
	})

	s.Run("duplicate id conflicts", func() {
		_, err := s.ledger.CreateDeed(s.ctx, deed)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("duplicate number conflicts", func() {
		dup := s.newDeed("LD-1001")
		_, err := s.ledger.CreateDeed(s.ctx, dup)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown id not found", func() {
		_, err := s.ledger.GetDeed(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *RedisLedgerSuite) TestUpdateAndHistory() {
	deed := s.newDeed("LD-2001")
	_, err := s.ledger.CreateDeed(s.ctx, deed)
	s.Require().NoError(err)

	verifier := uuid.New()
	status := models.DeedStatusVerified
	_, err = s.ledger.UpdateDeed(s.ctx, deed.ID, models.DeedUpdate{Status: &status, VerifiedBy: &verifier})
	s.Require().NoError(err)

	entries, err := s.ledger.GetDeedHistory(s.ctx, deed.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(models.DeedStatusPending, entries[0].Deed.Status)
	s.Equal(models.DeedStatusVerified, entries[1].Deed.Status)
	s.Less(entries[0].Sequence, entries[1].Sequence)
	s.NotEqual(entries[0].TxID, entries[1].TxID)
}

func (s *RedisLedgerSuite) TestTransfer() {
	deed := s.newDeed("LD-3001")
	_, err := s.ledger.CreateDeed(s.ctx, deed)
	s.Require().NoError(err)

	buyer := uuid.New()

	s.Run("wrong from owner", func() {
		_, err := s.ledger.TransferDeed(s.ctx, models.Transfer{
			ID: uuid.New(), DeedID: deed.ID, FromOwnerID: uuid.New(), ToOwnerID: buyer,
		})
		s.ErrorIs(err, sentinel.ErrOwnershipMismatch)
	})

	s.Run("owner transfers", func() {
		txID, err := s.ledger.TransferDeed(s.ctx, models.Transfer{
			ID: uuid.New(), DeedID: deed.ID, FromOwnerID: deed.OwnerID, ToOwnerID: buyer, Reason: "sale",
		})
		s.Require().NoError(err)
		s.NotEmpty(txID)

		got, err := s.ledger.GetDeed(s.ctx, deed.ID)
		s.Require().NoError(err)
		s.Equal(buyer, got.OwnerID)
		s.Equal(models.DeedStatusTransferred, got.Status)
	})
}

func (s *RedisLedgerSuite) TestConcurrentTransfersOneWinner() {
	deed := s.newDeed("LD-4001")
	_, err := s.ledger.CreateDeed(s.ctx, deed)
	s.Require().NoError(err)

	const racers = 10
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.ledger.TransferDeed(s.ctx, models.Transfer{
				ID: uuid.New(), DeedID: deed.ID, FromOwnerID: deed.OwnerID, ToOwnerID: uuid.New(),
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	s.Equal(1, wins, "optimistic transactions admit exactly one transfer")
}

func (s *RedisLedgerSuite) TestQueriesAndStats() {
	ownerA := uuid.New()
	for i, number := range []string{"LD-5001", "LD-5002", "LD-5003"} {
		deed := s.newDeed(number)
		if i < 2 {
			deed.OwnerID = ownerA
		}
		_, err := s.ledger.CreateDeed(s.ctx, deed)
		s.Require().NoError(err)
	}

	byOwner, err := s.ledger.QueryDeedsByOwner(s.ctx, ownerA)
	s.Require().NoError(err)
	s.Len(byOwner, 2)

	pending, err := s.ledger.QueryDeedsByStatus(s.ctx, models.DeedStatusPending)
	s.Require().NoError(err)
	s.Len(pending, 3)

	stats, err := s.ledger.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.Total)

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	s.Equal(stats.Total, sum, "status partitions sum to the total")
}
