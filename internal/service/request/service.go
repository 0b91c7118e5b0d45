package request

import (
	"context"
	"fmt"

	"github.com/wforce/workforce-backend-go/internal/domain/ledger"
	"github.com/wforce/workforce-backend-go/internal/domain/request"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type RequestServiceImpl struct {
	txm database.TxManager
	request.RequestRepository
	user.UserRepository
	ledgerService ledger.Service
}

func NewRequestService(
	txm database.TxManager,
	requestRepo request.RequestRepository,
	userRepo user.UserRepository,
	ledgerService ledger.Service,
) request.RequestService {
	return &RequestServiceImpl{
		txm:               txm,
		RequestRepository: requestRepo,
		UserRepository:    userRepo,
		ledgerService:     ledgerService,
	}
}

// Submit implements request.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, req request.SubmitRequest) (*request.RequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &request.Request{
		UserID:      actor.UserID,
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if _, err := s.RequestRepository.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp := request.ToResponse(*r)
	return &resp, nil
}

// Resolve implements request.RequestService. The row lock, authorization
// re-check, ledger side effect and status flip all run in one transaction so
// a failed balance reservation leaves the request pending and two concurrent
// resolutions cannot both win.
func (s *RequestServiceImpl) Resolve(ctx context.Context, req request.ResolveRequest) (*request.RequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var resolved *request.Request
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		r, err := s.RequestRepository.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if r.Status != request.StatusPending {
			return request.ErrAlreadyResolved
		}

		policy, ok := request.ResolverAllowed(r.Type, actor.Role)
		if !ok {
			return request.ErrForbidden
		}
		if policy.DepartmentScoped {
			if err := s.checkSameDepartment(ctx, actor.UserID, r.UserID); err != nil {
				return err
			}
		}

		if req.Approve {
			if err := s.applyApproval(ctx, r); err != nil {
				return err
			}
			if err := s.RequestRepository.MarkResolved(ctx, r.ID, request.StatusApproved, actor.UserID, actor.Role, nil); err != nil {
				return err
			}
			r.Status = request.StatusApproved
		} else {
			reason := req.RejectionReason
			if reason == nil || *reason == "" {
				defaultReason := "Rejected by " + actor.Role.DisplayName()
				reason = &defaultReason
			}
			if err := s.RequestRepository.MarkResolved(ctx, r.ID, request.StatusRejected, actor.UserID, actor.Role, reason); err != nil {
				return err
			}
			r.Status = request.StatusRejected
			r.RejectionReason = reason
		}

		r.ResolvedBy = &actor.UserID
		role := actor.Role
		r.ResolvedByRole = &role
		resolved = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := request.ToResponse(*resolved)
	return &resp, nil
}

// checkSameDepartment re-validates the department scope inside the
// transaction even though the route is already role-gated: a manager may only
// resolve requests from their own department.
func (s *RequestServiceImpl) checkSameDepartment(ctx context.Context, resolverID, targetID string) error {
	resolver, err := s.UserRepository.GetByID(ctx, resolverID)
	if err != nil {
		return err
	}
	target, err := s.UserRepository.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if resolver.DepartmentID == nil || target.DepartmentID == nil ||
		*resolver.DepartmentID != *target.DepartmentID {
		return request.ErrForbidden
	}
	return nil
}

func (s *RequestServiceImpl) applyApproval(ctx context.Context, r *request.Request) error {
	switch r.Type {
	case request.TypeLeave:
		_, err := s.ledgerService.ReserveLeave(ctx, r.UserID, r.LeaveDays())
		return err
	case request.TypeAdvance:
		if r.Amount == nil {
			return request.ErrAmountRequired
		}
		return s.ledgerService.ReserveDeduction(ctx, r.UserID, *r.Amount)
	}
	return fmt.Errorf("unknown request type %q", r.Type)
}

// MyRequests implements request.RequestService.
func (s *RequestServiceImpl) MyRequests(ctx context.Context) ([]request.RequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.RequestRepository.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// PendingRequests implements request.RequestService.
func (s *RequestServiceImpl) PendingRequests(ctx context.Context) ([]request.RequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case user.RoleDepartmentManager:
		manager, err := s.UserRepository.GetByID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if manager.DepartmentID == nil {
			return nil, user.ErrManagerHasNoDepartment
		}
		requests, err := s.RequestRepository.ListPending(ctx, request.TypeLeave, manager.DepartmentID)
		if err != nil {
			return nil, err
		}
		return toResponses(requests), nil

	case user.RoleHR:
		requests, err := s.RequestRepository.ListPending(ctx, request.TypeAdvance, nil)
		if err != nil {
			return nil, err
		}
		return toResponses(requests), nil

	case user.RoleAdmin:
		leaves, err := s.RequestRepository.ListPending(ctx, request.TypeLeave, nil)
		if err != nil {
			return nil, err
		}
		advances, err := s.RequestRepository.ListPending(ctx, request.TypeAdvance, nil)
		if err != nil {
			return nil, err
		}
		return toResponses(append(leaves, advances...)), nil
	}

	return nil, request.ErrForbidden
}

// AllRequests implements request.RequestService.
func (s *RequestServiceImpl) AllRequests(ctx context.Context) ([]request.RequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role != user.RoleAdmin {
		return nil, request.ErrForbidden
	}

	requests, err := s.RequestRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func toResponses(requests []request.Request) []request.RequestResponse {
	responses := make([]request.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, request.ToResponse(r))
	}
	return responses
}
