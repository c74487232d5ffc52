package viewmodel

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type roleChangeService interface {
	Submit(ctx context.Context, userID string, requestedRole entity.Role, reason string) (*entity.RoleChangeRequest, error)
	GetPending(ctx context.Context) ([]entity.RoleChangeRequest, error)
	GetByUser(ctx context.Context, userID string) ([]entity.RoleChangeRequest, error)
	Approve(ctx context.Context, id string, reviewer *entity.User, notes string) (*entity.RoleChangeRequest, error)
	Reject(ctx context.Context, id string, reviewer *entity.User, notes string) (*entity.RoleChangeRequest, error)
}

// RoleRequestViewModel backs the role request form and the admin review queue.
type RoleRequestViewModel struct {
	*scope

	session  Session
	requests roleChangeService
	clock    clockwork.Clock

	Request *Store[ItemState[entity.RoleChangeRequest]]
	List    *Store[ListState[entity.RoleChangeRequest]]
}

func NewRoleRequestViewModel(
	ctx context.Context,
	logger *types.Logger,
	session Session,
	requests roleChangeService,
	clock clockwork.Clock,
) *RoleRequestViewModel {
	return &RoleRequestViewModel{
		scope:    newScope(ctx, logger),
		session:  session,
		requests: requests,
		clock:    clock,
		Request:  NewStore(ItemState[entity.RoleChangeRequest]{}),
		List:     NewStore(ListState[entity.RoleChangeRequest]{}),
	}
}

// LoadPending fills the admin review queue.
func (vm *RoleRequestViewModel) LoadPending() {
	vm.launch(vm.loadPending)
}

func (vm *RoleRequestViewModel) loadPending(ctx context.Context) {
	vm.fillList(ctx, "load pending requests", vm.requests.GetPending)
}

// LoadMine lists the signed-in user's own requests.
func (vm *RoleRequestViewModel) LoadMine() {
	vm.launch(func(ctx context.Context) {
		vm.fillList(ctx, "load my requests", func(ctx context.Context) ([]entity.RoleChangeRequest, error) {
			return vm.requests.GetByUser(ctx, vm.session.UserID)
		})
	})
}

func (vm *RoleRequestViewModel) fillList(
	ctx context.Context,
	op string,
	fetch func(context.Context) ([]entity.RoleChangeRequest, error),
) {
	listLoading(vm.List)
	requests, err := fetch(ctx)
	if err != nil {
		listFailed(vm.scope, vm.List, op, err)
		return
	}
	vm.List.Set(ListState[entity.RoleChangeRequest]{Status: StatusSuccess, Items: requests})
}

func (vm *RoleRequestViewModel) Submit(form validator.RoleRequestForm) {
	if !allowed(vm.scope, vm.session, vm.Request, policy.ActionRequestRoleChange) || !validForm(vm.Request, form, vm.clock.Now()) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Request)
		request, err := vm.requests.Submit(ctx, vm.session.UserID, entity.Role(form.RequestedRole), form.Reason)
		if itemDone(vm.scope, vm.Request, "submit role request", request, err, true) {
			vm.post("Your request was sent to the administrators")
		}
	})
}

func (vm *RoleRequestViewModel) Approve(id, notes string) {
	vm.review("approve role request", func(ctx context.Context) (*entity.RoleChangeRequest, error) {
		return vm.requests.Approve(ctx, id, vm.session.User(), notes)
	})
}

func (vm *RoleRequestViewModel) Reject(id, notes string) {
	vm.review("reject role request", func(ctx context.Context) (*entity.RoleChangeRequest, error) {
		return vm.requests.Reject(ctx, id, vm.session.User(), notes)
	})
}

func (vm *RoleRequestViewModel) review(op string, decide func(context.Context) (*entity.RoleChangeRequest, error)) {
	if !allowed(vm.scope, vm.session, vm.Request, policy.ActionReviewRoleRequests) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Request)
		request, err := decide(ctx)
		if itemDone(vm.scope, vm.Request, op, request, err, true) {
			vm.loadPending(ctx)
		}
	})
}

func (vm *RoleRequestViewModel) ClearResult() {
	clearResult(vm.Request)
}
