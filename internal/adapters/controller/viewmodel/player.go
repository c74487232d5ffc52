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

type playerService interface {
	Get(ctx context.Context, id string) (*entity.Player, error)
	Create(ctx context.Context, player entity.Player) (*entity.Player, error)
	Update(ctx context.Context, player *entity.Player) (*entity.Player, error)
	Delete(ctx context.Context, id string) error
	GetByTeam(ctx context.Context, teamID string) ([]entity.Player, error)
	SearchPlayers(ctx context.Context, query string) ([]entity.Player, error)
	Transfer(ctx context.Context, playerID, teamID string) (*entity.Player, error)
}

// PlayerViewModel backs the player management screen of one team.
type PlayerViewModel struct {
	*scope

	session Session
	players playerService
	clock   clockwork.Clock
	teamID  string

	Player *Store[ItemState[entity.Player]]
	List   *Store[ListState[entity.Player]]
}

func NewPlayerViewModel(
	ctx context.Context,
	logger *types.Logger,
	session Session,
	players playerService,
	clock clockwork.Clock,
	teamID string,
) *PlayerViewModel {
	return &PlayerViewModel{
		scope:   newScope(ctx, logger),
		session: session,
		players: players,
		clock:   clock,
		teamID:  teamID,
		Player:  NewStore(ItemState[entity.Player]{}),
		List:    NewStore(ListState[entity.Player]{}),
	}
}

func (vm *PlayerViewModel) LoadPlayers() {
	vm.launch(vm.loadPlayers)
}

func (vm *PlayerViewModel) loadPlayers(ctx context.Context) {
	listLoading(vm.List)
	players, err := vm.players.GetByTeam(ctx, vm.teamID)
	if err != nil {
		listFailed(vm.scope, vm.List, "load players", err)
		return
	}
	vm.List.Set(ListState[entity.Player]{Status: StatusSuccess, Items: players})
}

// SearchPlayers lists every player whose full name contains query, ignoring case.
func (vm *PlayerViewModel) SearchPlayers(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		vm.LoadPlayers()
		return
	}
	vm.launch(func(ctx context.Context) {
		listLoading(vm.List)
		players, err := vm.players.SearchPlayers(ctx, query)
		if err != nil {
			listFailed(vm.scope, vm.List, "search players", err)
			return
		}
		vm.List.Set(ListState[entity.Player]{Status: StatusSuccess, Items: players})
	})
}

func (vm *PlayerViewModel) LoadPlayer(id string) {
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Player)
		player, err := vm.players.Get(ctx, id)
		itemDone(vm.scope, vm.Player, "load player", player, err, false)
	})
}

// AddPlayer validates form and adds the player to the team of this view-model.
func (vm *PlayerViewModel) AddPlayer(form validator.PlayerForm) {
	if !allowed(vm.scope, vm.session, vm.Player, policy.ActionManagePlayers) || !validForm(vm.Player, form, vm.clock.Now()) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Player)
		player, err := vm.players.Create(ctx, entity.Player{
			FirstName:    strings.TrimSpace(form.FirstName),
			LastName:     strings.TrimSpace(form.LastName),
			Email:        strings.TrimSpace(form.Email),
			PhoneNumber:  validator.NormalizePhone(form.PhoneNumber),
			DateOfBirth:  form.DateOfBirth,
			TeamID:       vm.teamID,
			Position:     entity.Position(form.Position),
			JerseyNumber: form.JerseyNumber,
			Nationality:  "Namibian",
		})
		if itemDone(vm.scope, vm.Player, "add player", player, err, true) {
			vm.loadPlayers(ctx)
		}
	})
}

func (vm *PlayerViewModel) UpdatePlayer(player *entity.Player) {
	if !allowed(vm.scope, vm.session, vm.Player, policy.ActionManagePlayers) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Player)
		updated, err := vm.players.Update(ctx, player)
		if itemDone(vm.scope, vm.Player, "update player", updated, err, true) {
			vm.loadPlayers(ctx)
		}
	})
}

func (vm *PlayerViewModel) RemovePlayer(id string) {
	if !allowed(vm.scope, vm.session, vm.Player, policy.ActionManagePlayers) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Player)
		err := vm.players.Delete(ctx, id)
		if itemDone(vm.scope, vm.Player, "remove player", nil, err, true) {
			vm.loadPlayers(ctx)
		}
	})
}

func (vm *PlayerViewModel) TransferPlayer(playerID, teamID string) {
	if !allowed(vm.scope, vm.session, vm.Player, policy.ActionManagePlayers) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Player)
		player, err := vm.players.Transfer(ctx, playerID, teamID)
		if itemDone(vm.scope, vm.Player, "transfer player", player, err, true) {
			vm.loadPlayers(ctx)
		}
	})
}

func (vm *PlayerViewModel) ClearResult() {
	clearResult(vm.Player)
}
