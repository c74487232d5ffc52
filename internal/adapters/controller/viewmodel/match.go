package viewmodel

import (
	"context"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type matchService interface {
	GetAll(ctx context.Context) ([]entity.Match, error)
	Get(ctx context.Context, id string) (*entity.Match, error)
	GetByEvent(ctx context.Context, eventID string) ([]entity.Match, error)
	StartLive(ctx context.Context, matchID string) (*entity.LiveGame, error)
	GetLive(ctx context.Context, matchID string) (*entity.LiveGame, error)
	RecordGoal(ctx context.Context, matchID, teamID, playerID, playerName string, minute int) (*entity.LiveGame, error)
	RecordCard(ctx context.Context, matchID string, card entity.GameEventType, teamID, playerID string, minute int) (*entity.LiveGame, error)
	NextPeriod(ctx context.Context, matchID string) (*entity.LiveGame, error)
	Complete(ctx context.Context, matchID string) (*entity.GameResult, error)
}

// MatchViewModel backs the fixtures list and the live scoring screen.
type MatchViewModel struct {
	*scope

	session Session
	matches matchService

	Match  *Store[ItemState[entity.Match]]
	Live   *Store[ItemState[entity.LiveGame]]
	Result *Store[ItemState[entity.GameResult]]
	List   *Store[ListState[entity.Match]]
}

func NewMatchViewModel(ctx context.Context, logger *types.Logger, session Session, matches matchService) *MatchViewModel {
	return &MatchViewModel{
		scope:   newScope(ctx, logger),
		session: session,
		matches: matches,
		Match:   NewStore(ItemState[entity.Match]{}),
		Live:    NewStore(ItemState[entity.LiveGame]{}),
		Result:  NewStore(ItemState[entity.GameResult]{}),
		List:    NewStore(ListState[entity.Match]{}),
	}
}

// LoadMatches lists the fixtures of eventID, or every fixture when eventID is empty.
func (vm *MatchViewModel) LoadMatches(eventID string) {
	vm.launch(func(ctx context.Context) {
		listLoading(vm.List)
		var (
			matches []entity.Match
			err     error
		)
		if eventID == "" {
			matches, err = vm.matches.GetAll(ctx)
		} else {
			matches, err = vm.matches.GetByEvent(ctx, eventID)
		}
		if err != nil {
			listFailed(vm.scope, vm.List, "load matches", err)
			return
		}
		vm.List.Set(ListState[entity.Match]{Status: StatusSuccess, Items: matches})
	})
}

func (vm *MatchViewModel) LoadMatch(id string) {
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Match)
		match, err := vm.matches.Get(ctx, id)
		if !itemDone(vm.scope, vm.Match, "load match", match, err, false) || match.Status != entity.MatchLive {
			return
		}
		game, err := vm.matches.GetLive(ctx, id)
		itemDone(vm.scope, vm.Live, "load live game", game, err, false)
	})
}

func (vm *MatchViewModel) StartLive(matchID string) {
	vm.updateLive("start match", func(ctx context.Context) (*entity.LiveGame, error) {
		return vm.matches.StartLive(ctx, matchID)
	})
}

func (vm *MatchViewModel) RecordGoal(matchID, teamID, playerID, playerName string, minute int) {
	vm.updateLive("record goal", func(ctx context.Context) (*entity.LiveGame, error) {
		return vm.matches.RecordGoal(ctx, matchID, teamID, playerID, playerName, minute)
	})
}

func (vm *MatchViewModel) RecordCard(matchID string, card entity.GameEventType, teamID, playerID string, minute int) {
	vm.updateLive("record card", func(ctx context.Context) (*entity.LiveGame, error) {
		return vm.matches.RecordCard(ctx, matchID, card, teamID, playerID, minute)
	})
}

func (vm *MatchViewModel) NextPeriod(matchID string) {
	vm.updateLive("next period", func(ctx context.Context) (*entity.LiveGame, error) {
		return vm.matches.NextPeriod(ctx, matchID)
	})
}

// Complete ends the live game and stores its result.
func (vm *MatchViewModel) Complete(matchID string) {
	if !allowed(vm.scope, vm.session, vm.Result, policy.ActionRecordMatchResults) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Result)
		result, err := vm.matches.Complete(ctx, matchID)
		if !itemDone(vm.scope, vm.Result, "complete match", result, err, true) {
			return
		}
		vm.Live.Update(func(s ItemState[entity.LiveGame]) ItemState[entity.LiveGame] {
			if s.Item != nil {
				game := *s.Item
				game.IsLive = false
				s.Item = &game
			}
			return s
		})
	})
}

func (vm *MatchViewModel) updateLive(op string, call func(ctx context.Context) (*entity.LiveGame, error)) {
	if !allowed(vm.scope, vm.session, vm.Live, policy.ActionRecordMatchResults) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Live)
		game, err := call(ctx)
		itemDone(vm.scope, vm.Live, op, game, err, true)
	})
}
