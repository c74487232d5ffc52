package viewmodel

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type teamService interface {
	GetAll(ctx context.Context) ([]entity.Team, error)
	Get(ctx context.Context, id string) (*entity.Team, error)
	Create(ctx context.Context, team entity.Team) (*entity.Team, error)
	Update(ctx context.Context, team *entity.Team) (*entity.Team, error)
	Delete(ctx context.Context, id string) error
	GetByCreator(ctx context.Context, userID string) ([]entity.Team, error)
	Search(ctx context.Context, query string) ([]entity.Team, error)
}

// TeamViewModel backs the team registration and team detail screens.
type TeamViewModel struct {
	*scope

	session Session
	teams   teamService
	clock   clockwork.Clock

	Team *Store[ItemState[entity.Team]]
	List *Store[ListState[entity.Team]]
}

func NewTeamViewModel(ctx context.Context, logger *types.Logger, session Session, teams teamService, clock clockwork.Clock) *TeamViewModel {
	return &TeamViewModel{
		scope:   newScope(ctx, logger),
		session: session,
		teams:   teams,
		clock:   clock,
		Team:    NewStore(ItemState[entity.Team]{}),
		List:    NewStore(ListState[entity.Team]{}),
	}
}

func (vm *TeamViewModel) LoadTeams() {
	vm.launch(vm.loadTeams)
}

func (vm *TeamViewModel) loadTeams(ctx context.Context) {
	vm.fillList(ctx, "load teams", vm.teams.GetAll)
}

// LoadMyTeams lists the teams the signed-in user registered.
func (vm *TeamViewModel) LoadMyTeams() {
	vm.launch(func(ctx context.Context) {
		vm.fillList(ctx, "load my teams", func(ctx context.Context) ([]entity.Team, error) {
			return vm.teams.GetByCreator(ctx, vm.session.UserID)
		})
	})
}

func (vm *TeamViewModel) Search(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		vm.LoadTeams()
		return
	}
	vm.launch(func(ctx context.Context) {
		vm.fillList(ctx, "search teams", func(ctx context.Context) ([]entity.Team, error) {
			return vm.teams.Search(ctx, query)
		})
	})
}

func (vm *TeamViewModel) fillList(ctx context.Context, op string, fetch func(context.Context) ([]entity.Team, error)) {
	listLoading(vm.List)
	teams, err := fetch(ctx)
	if err != nil {
		listFailed(vm.scope, vm.List, op, err)
		return
	}
	vm.List.Set(ListState[entity.Team]{Status: StatusSuccess, Items: teams})
}

func (vm *TeamViewModel) LoadTeam(id string) {
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Team)
		team, err := vm.teams.Get(ctx, id)
		itemDone(vm.scope, vm.Team, "load team", team, err, false)
	})
}

// RegisterTeam validates form and creates the team on behalf of the signed-in user.
func (vm *TeamViewModel) RegisterTeam(form validator.TeamForm, homeVenue string) {
	if !allowed(vm.scope, vm.session, vm.Team, policy.ActionRegisterTeam) || !validForm(vm.Team, form, vm.clock.Now()) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Team)
		team, err := vm.teams.Create(ctx, entity.Team{
			Name:         strings.TrimSpace(form.Name),
			Category:     entity.TeamCategory(form.Category),
			Division:     strings.TrimSpace(form.Division),
			CoachName:    strings.TrimSpace(form.CoachName),
			ManagerName:  strings.TrimSpace(form.ManagerName),
			ContactEmail: strings.TrimSpace(form.ContactEmail),
			ContactPhone: validator.NormalizePhone(form.ContactPhone),
			HomeVenue:    strings.TrimSpace(homeVenue),
			FoundedYear:  vm.clock.Now().Year(),
			CreatedBy:    vm.session.UserID,
		})
		if itemDone(vm.scope, vm.Team, "register team", team, err, true) {
			vm.post(team.Name + " registered")
			vm.loadTeams(ctx)
		}
	})
}

func (vm *TeamViewModel) UpdateTeam(team *entity.Team) {
	if !allowed(vm.scope, vm.session, vm.Team, policy.ActionManageTeams) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Team)
		updated, err := vm.teams.Update(ctx, team)
		if itemDone(vm.scope, vm.Team, "update team", updated, err, true) {
			vm.loadTeams(ctx)
		}
	})
}

func (vm *TeamViewModel) DeleteTeam(id string) {
	if !allowed(vm.scope, vm.session, vm.Team, policy.ActionManageTeams) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Team)
		err := vm.teams.Delete(ctx, id)
		if itemDone(vm.scope, vm.Team, "delete team", nil, err, true) {
			vm.loadTeams(ctx)
		}
	})
}

func (vm *TeamViewModel) ClearResult() {
	clearResult(vm.Team)
}
