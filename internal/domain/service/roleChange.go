package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type roleUserService interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	SetRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)
}

type roleDecisionMailer interface {
	SendRoleDecision(request *entity.RoleChangeRequest) error
}

type RoleChangeService struct {
	logger *types.Logger

	documents DocumentStore
	users     roleUserService
	mailer    roleDecisionMailer
	clock     clockwork.Clock
}

func NewRoleChangeService(
	logger *types.Logger,
	documents DocumentStore,
	users roleUserService,
	mailer roleDecisionMailer,
	clock clockwork.Clock,
) *RoleChangeService {
	return &RoleChangeService{
		logger:    logger,
		documents: documents,
		users:     users,
		mailer:    mailer,
		clock:     clock,
	}
}

// Submit files a request by userID for requestedRole. A user has at most one pending request.
func (s *RoleChangeService) Submit(ctx context.Context, userID string, requestedRole entity.Role, reason string) (*entity.RoleChangeRequest, error) {
	if !requestedRole.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", errorz.ErrInvalidInput, requestedRole)
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = policy.Check(user.Role, policy.ActionRequestRoleChange); err != nil {
		return nil, err
	}
	if user.Role == requestedRole {
		return nil, fmt.Errorf("%w: user already has role %s", errorz.ErrInvalidInput, requestedRole)
	}

	requests, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.IsPending() {
			return nil, errorz.ErrPendingRequestExists
		}
	}

	request := entity.RoleChangeRequest{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserName:      user.FullName(),
		UserEmail:     user.Email,
		CurrentRole:   user.Role,
		RequestedRole: requestedRole,
		Reason:        strings.TrimSpace(reason),
		Status:        entity.RequestPending,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err = setDocument(ctx, s.documents, roleChangeRequestsCollection, request.ID, request.ToMap()); err != nil {
		return nil, err
	}
	s.logger.Infof("Role change requested (request_id=%s, user_id=%s, role=%s)", request.ID, user.ID, requestedRole)
	return &request, nil
}

func (s *RoleChangeService) Get(ctx context.Context, id string) (*entity.RoleChangeRequest, error) {
	return getDocument(ctx, s.documents, roleChangeRequestsCollection, id, entity.RoleChangeRequestFromMap)
}

// GetPending returns the requests awaiting review, oldest first.
func (s *RoleChangeService) GetPending(ctx context.Context) ([]entity.RoleChangeRequest, error) {
	requests, err := getAllDocuments(ctx, s.documents, roleChangeRequestsCollection, entity.RoleChangeRequestFromMap)
	if err != nil {
		return nil, err
	}
	requests = filter(requests, func(r entity.RoleChangeRequest) bool { return r.IsPending() })
	sortBy(requests, func(a, b entity.RoleChangeRequest) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return requests, nil
}

// GetByUser returns the requests of userID, newest first.
func (s *RoleChangeService) GetByUser(ctx context.Context, userID string) ([]entity.RoleChangeRequest, error) {
	requests, err := getAllDocuments(ctx, s.documents, roleChangeRequestsCollection, entity.RoleChangeRequestFromMap)
	if err != nil {
		return nil, err
	}
	requests = filter(requests, func(r entity.RoleChangeRequest) bool { return r.UserID == userID })
	sortBy(requests, func(a, b entity.RoleChangeRequest) bool { return a.CreatedAt.After(b.CreatedAt) })
	return requests, nil
}

// Approve grants the requested role and tells the applicant by email.
// The request stays pending when the role cannot be granted.
func (s *RoleChangeService) Approve(ctx context.Context, id string, reviewer *entity.User, notes string) (*entity.RoleChangeRequest, error) {
	request, err := s.review(ctx, id, reviewer, func(r *entity.RoleChangeRequest) error {
		return r.Approve(reviewer.ID, notes, s.clock.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	if _, err = s.users.SetRole(ctx, request.UserID, request.RequestedRole); err != nil {
		return nil, fmt.Errorf("failed to grant role %s to user %s: %w", request.RequestedRole, request.UserID, err)
	}
	if err = s.save(ctx, request, reviewer); err != nil {
		return nil, err
	}
	s.sendDecision(request)
	return request, nil
}

func (s *RoleChangeService) Reject(ctx context.Context, id string, reviewer *entity.User, notes string) (*entity.RoleChangeRequest, error) {
	request, err := s.review(ctx, id, reviewer, func(r *entity.RoleChangeRequest) error {
		return r.Reject(reviewer.ID, notes, s.clock.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	if err = s.save(ctx, request, reviewer); err != nil {
		return nil, err
	}
	s.sendDecision(request)
	return request, nil
}

// review loads the request and applies decide to it without storing the result.
func (s *RoleChangeService) review(
	ctx context.Context,
	id string,
	reviewer *entity.User,
	decide func(*entity.RoleChangeRequest) error,
) (*entity.RoleChangeRequest, error) {
	if err := policy.Check(reviewer.Role, policy.ActionReviewRoleRequests); err != nil {
		return nil, err
	}
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = decide(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RoleChangeService) save(ctx context.Context, request *entity.RoleChangeRequest, reviewer *entity.User) error {
	if err := setDocument(ctx, s.documents, roleChangeRequestsCollection, request.ID, request.ToMap()); err != nil {
		return err
	}
	s.logger.Infof("Role change request reviewed (request_id=%s, status=%s, reviewer=%s)", request.ID, request.Status, reviewer.ID)
	return nil
}

func (s *RoleChangeService) sendDecision(request *entity.RoleChangeRequest) {
	if s.mailer == nil || request.UserEmail == "" {
		return
	}
	if err := s.mailer.SendRoleDecision(request); err != nil {
		s.logger.Errorf("failed to email role decision for request %s: %v", request.ID, err)
	}
}
