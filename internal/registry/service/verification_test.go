package service_test

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
	dErrors "landregistry/pkg/domain-errors"
)

func (s *ServiceSuite) TestVerifyDeed() {
	owner := uuid.New()
	official := uuid.New()
	ownerCtx := s.ctx(owner, models.RoleCitizen)
	officialCtx := s.ctx(official, models.RoleOfficial)

	deed := s.mustCreate(ownerCtx, createReq(owner, "DN-9001"))

	s.Run("citizen may not verify", func() {
		_, err := s.svc.VerifyDeed(ownerCtx, deed.ID, &models.VerifyDeedRequest{Decision: models.RequestStatusApproved})
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("unknown deed", func() {
		_, err := s.svc.VerifyDeed(officialCtx, uuid.New(), &models.VerifyDeedRequest{Decision: models.RequestStatusApproved})
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("invalid decision", func() {
		_, err := s.svc.VerifyDeed(officialCtx, deed.ID, &models.VerifyDeedRequest{Decision: models.RequestStatusPending})
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	s.Run("official approves", func() {
		res, err := s.svc.VerifyDeed(officialCtx, deed.ID, &models.VerifyDeedRequest{
			Decision: models.RequestStatusApproved,
			Notes:    "survey matches cadastre",
		})
		s.Require().NoError(err)
		s.Equal(models.DeedStatusVerified, res.Deed.Status)
		s.Require().NotNil(res.Deed.VerifiedBy)
		s.Equal(official, *res.Deed.VerifiedBy)
		s.NotNil(res.Deed.VerifiedAt)

		logs, err := s.svc.ListVerificationLogs(officialCtx, deed.ID)
		s.Require().NoError(err)
		s.Require().Len(logs, 1)
		s.Equal(models.RequestStatusApproved, logs[0].Result)
		s.Equal(official, logs[0].VerifierID)
	})

	s.Run("verified deed accepts no second decision", func() {
		_, err := s.svc.VerifyDeed(officialCtx, deed.ID, &models.VerifyDeedRequest{Decision: models.RequestStatusRejected})
		s.Equal(dErrors.CodeInvalidState, dErrors.CodeOf(err))
	})

	s.Run("rejection is recorded the same way", func() {
		other := s.mustCreate(ownerCtx, createReq(owner, "DN-9002"))
		res, err := s.svc.VerifyDeed(officialCtx, other.ID, &models.VerifyDeedRequest{
			Decision: models.RequestStatusRejected,
			Notes:    "boundary dispute unresolved",
		})
		s.Require().NoError(err)
		s.Equal(models.DeedStatusRejected, res.Deed.Status)
	})
}

// TestConcurrentVerifyDecisions races an approval against a rejection on the
// same pending deed. The store's status guard admits exactly one.
func (s *ServiceSuite) TestConcurrentVerifyDecisions() {
	owner := uuid.New()
	ownerCtx := s.ctx(owner, models.RoleCitizen)
	decisions := []models.RequestStatus{models.RequestStatusApproved, models.RequestStatusRejected}
	settled := map[models.RequestStatus]models.DeedStatus{
		models.RequestStatusApproved: models.DeedStatusVerified,
		models.RequestStatusRejected: models.DeedStatusRejected,
	}

	for i := 0; i < 20; i++ {
		deed := s.mustCreate(ownerCtx, createReq(owner, fmt.Sprintf("DN-9400-%02d", i)))

		var errs [2]error
		start := make(chan struct{})
		var wg sync.WaitGroup
		for j := range decisions {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				officialCtx := s.ctx(uuid.New(), models.RoleOfficial)
				<-start
				_, errs[j] = s.svc.VerifyDeed(officialCtx, deed.ID, &models.VerifyDeedRequest{
					Decision: decisions[j],
				})
			}(j)
		}
		close(start)
		wg.Wait()

		winner := -1
		for j, err := range errs {
			if err == nil {
				s.Equal(-1, winner, "exactly one decision lands")
				winner = j
				continue
			}
			s.Equal(dErrors.CodeInvalidState, dErrors.CodeOf(err), "the losing decision fails invalid_state")
		}
		s.Require().GreaterOrEqual(winner, 0, "one decision must land")

		current, err := s.svc.GetDeed(s.ctx(uuid.New(), models.RoleOfficial), deed.ID.String())
		s.Require().NoError(err)
		s.Equal(settled[decisions[winner]], current.Deed.Status, "the deed carries the winner's decision")
	}
}

func (s *ServiceSuite) TestCreateVerificationRequest() {
	owner := uuid.New()
	ownerCtx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ownerCtx, createReq(owner, "DN-9101"))

	s.Run("unknown deed", func() {
		_, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: uuid.New(), Kind: models.VerificationKindOwnership,
		})
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("unknown kind", func() {
		_, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: "provenance",
		})
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	s.Run("citizen on someone else's deed", func() {
		_, err := s.svc.CreateVerificationRequest(s.ctx(uuid.New(), models.RoleCitizen), &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindOwnership,
		})
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("owner opens a request", func() {
		req, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindOwnership, Details: "pre-sale check",
		})
		s.Require().NoError(err)
		s.Equal(models.RequestStatusPending, req.Status)
		s.Equal(owner, req.RequesterID)
	})

	s.Run("second pending request of the same kind", func() {
		_, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindOwnership,
		})
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("different kind is fine", func() {
		_, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindHistory,
		})
		s.Require().NoError(err)
	})

	s.Run("bank official on someone else's deed", func() {
		_, err := s.svc.CreateVerificationRequest(s.ctx(uuid.New(), models.RoleBankOfficial), &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindAuthenticity, Details: "mortgage due diligence",
		})
		s.Require().NoError(err, "elevated roles may request verification of any deed")
	})
}

func (s *ServiceSuite) TestProcessVerificationRequest() {
	owner := uuid.New()
	official := uuid.New()
	ownerCtx := s.ctx(owner, models.RoleCitizen)
	officialCtx := s.ctx(official, models.RoleOfficial)

	deed := s.mustCreate(ownerCtx, createReq(owner, "DN-9201"))
	request, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
		DeedID: deed.ID, Kind: models.VerificationKindOwnership,
	})
	s.Require().NoError(err)

	s.Run("citizen may not process", func() {
		_, err := s.svc.ProcessVerificationRequest(ownerCtx, &models.ProcessVerificationRequest{
			RequestID: request.ID, Decision: models.RequestStatusApproved,
		})
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("unknown request", func() {
		_, err := s.svc.ProcessVerificationRequest(officialCtx, &models.ProcessVerificationRequest{
			RequestID: uuid.New(), Decision: models.RequestStatusApproved,
		})
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("approving an ownership request verifies the deed", func() {
		outcome, err := s.svc.ProcessVerificationRequest(officialCtx, &models.ProcessVerificationRequest{
			RequestID:       request.ID,
			Decision:        models.RequestStatusApproved,
			ResponseDetails: "ownership chain confirmed",
		})
		s.Require().NoError(err)
		s.Equal(models.RequestStatusApproved, outcome.Request.Status)
		s.Require().NotNil(outcome.Request.ProcessedBy)
		s.Equal(official, *outcome.Request.ProcessedBy)
		s.Require().NotNil(outcome.Deed)
		s.Equal(models.DeedStatusVerified, outcome.Deed.Status)

		logs, err := s.svc.ListVerificationLogs(officialCtx, deed.ID)
		s.Require().NoError(err)
		s.Require().Len(logs, 1)
		s.Equal(models.VerificationKindOwnership, logs[0].Kind)
	})

	s.Run("first decision wins", func() {
		_, err := s.svc.ProcessVerificationRequest(officialCtx, &models.ProcessVerificationRequest{
			RequestID: request.ID, Decision: models.RequestStatusRejected,
		})
		s.Equal(dErrors.CodeAlreadyProcessed, dErrors.CodeOf(err))
	})

	s.Run("ownership request on a settled deed", func() {
		// Request opened before the deed left pending, decided after.
		late, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindAuthenticity,
		})
		s.Require().NoError(err)

		_, err = s.svc.ProcessVerificationRequest(officialCtx, &models.ProcessVerificationRequest{
			RequestID: late.ID, Decision: models.RequestStatusApproved,
		})
		s.Equal(dErrors.CodeInvalidState, dErrors.CodeOf(err))
	})

	s.Run("history request leaves the deed alone", func() {
		histReq, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: deed.ID, Kind: models.VerificationKindHistory,
		})
		s.Require().NoError(err)

		outcome, err := s.svc.ProcessVerificationRequest(officialCtx, &models.ProcessVerificationRequest{
			RequestID: histReq.ID, Decision: models.RequestStatusApproved,
		})
		s.Require().NoError(err)
		s.Nil(outcome.Deed)

		current, err := s.svc.GetDeed(officialCtx, deed.ID.String())
		s.Require().NoError(err)
		s.Equal(models.DeedStatusVerified, current.Deed.Status, "history decisions never move the deed status")
	})

	s.Run("rejecting an ownership request rejects the deed", func() {
		other := s.mustCreate(ownerCtx, createReq(owner, "DN-9202"))
		req, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
			DeedID: other.ID, Kind: models.VerificationKindOwnership,
		})
		s.Require().NoError(err)

		outcome, err := s.svc.ProcessVerificationRequest(officialCtx, &models.ProcessVerificationRequest{
			RequestID: req.ID, Decision: models.RequestStatusRejected, ResponseDetails: "forged signature",
		})
		s.Require().NoError(err)
		s.Equal(models.DeedStatusRejected, outcome.Deed.Status)
	})
}

func (s *ServiceSuite) TestListVerificationRequests() {
	owner := uuid.New()
	ownerCtx := s.ctx(owner, models.RoleCitizen)
	deed := s.mustCreate(ownerCtx, createReq(owner, "DN-9301"))

	_, err := s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
		DeedID: deed.ID, Kind: models.VerificationKindOwnership,
	})
	s.Require().NoError(err)
	_, err = s.svc.CreateVerificationRequest(ownerCtx, &models.CreateVerificationRequest{
		DeedID: deed.ID, Kind: models.VerificationKindHistory,
	})
	s.Require().NoError(err)

	s.Run("owner lists", func() {
		requests, err := s.svc.ListVerificationRequests(ownerCtx, deed.ID)
		s.Require().NoError(err)
		s.Len(requests, 2)
	})

	s.Run("other citizen forbidden", func() {
		_, err := s.svc.ListVerificationRequests(s.ctx(uuid.New(), models.RoleCitizen), deed.ID)
		s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
	})

	s.Run("official allowed", func() {
		requests, err := s.svc.ListVerificationRequests(s.ctx(uuid.New(), models.RoleOfficial), deed.ID)
		s.Require().NoError(err)
		s.Len(requests, 2)
	})
}
