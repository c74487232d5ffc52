package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
)

type fakePlayers struct {
	mu        sync.Mutex
	players   []entity.Player
	err       error
	getByTeam int
	searches  []string
}

func (f *fakePlayers) find(id string) (int, error) {
	for i := range f.players {
		if f.players[i].ID == id {
			return i, nil
		}
	}
	return -1, errorz.ErrNotFound
}

func (f *fakePlayers) Get(_ context.Context, id string) (*entity.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(id)
	if err != nil {
		return nil, err
	}
	player := f.players[i]
	return &player, nil
}

func (f *fakePlayers) Create(_ context.Context, player entity.Player) (*entity.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player.ID = fmt.Sprintf("p%d", len(f.players)+1)
	f.players = append(f.players, player)
	return &player, nil
}

func (f *fakePlayers) Update(_ context.Context, player *entity.Player) (*entity.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(player.ID)
	if err != nil {
		return nil, err
	}
	f.players[i] = *player
	return player, nil
}

func (f *fakePlayers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(id)
	if err != nil {
		return err
	}
	f.players = append(f.players[:i], f.players[i+1:]...)
	return nil
}

func (f *fakePlayers) GetByTeam(_ context.Context, teamID string) ([]entity.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getByTeam++
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Player
	for _, p := range f.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlayers) SearchPlayers(_ context.Context, query string) ([]entity.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Player
	for _, p := range f.players {
		if strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlayers) Transfer(_ context.Context, playerID, teamID string) (*entity.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(playerID)
	if err != nil {
		return nil, err
	}
	f.players[i].TeamID = teamID
	player := f.players[i]
	return &player, nil
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{players: []entity.Player{
		{ID: "p1", FirstName: "Ndapewa", LastName: "Shilongo", TeamID: "t1", JerseyNumber: 9},
		{ID: "p2", FirstName: "Maria", LastName: "Amukoto", TeamID: "t1", JerseyNumber: 4},
		{ID: "p3", FirstName: "Anna", LastName: "Shikongo", TeamID: "t2", JerseyNumber: 1},
	}}
}

func newPlayerVM(t *testing.T, role entity.Role, players *fakePlayers) *PlayerViewModel {
	t.Helper()
	vm := NewPlayerViewModel(context.Background(), testLogger, sessionAs(role), players, testClock(), "t1")
	t.Cleanup(vm.Close)
	return vm
}

func TestPlayerViewModel_SearchPlayers(t *testing.T) {
	players := newFakePlayers()
	vm := newPlayerVM(t, entity.Coach, players)

	vm.SearchPlayers("  SHI ")
	vm.Wait()

	list := vm.List.Get()
	assert.Equal(t, StatusSuccess, list.Status)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "p1", list.Items[0].ID)
	assert.Equal(t, "p3", list.Items[1].ID)
	assert.Equal(t, []string{"SHI"}, players.searches)

	vm.SearchPlayers(" ")
	vm.Wait()

	list = vm.List.Get()
	require.Len(t, list.Items, 2)
	assert.Equal(t, "t1", list.Items[0].TeamID)
	assert.Equal(t, "t1", list.Items[1].TeamID)
	assert.Equal(t, 1, players.getByTeam)
	assert.Len(t, players.searches, 1)
}

func TestPlayerViewModel_SearchFailure(t *testing.T) {
	players := newFakePlayers()
	vm := newPlayerVM(t, entity.Coach, players)

	vm.LoadPlayers()
	vm.Wait()
	require.Len(t, vm.List.Get().Items, 2)

	players.err = errors.New("remote store unavailable")
	vm.SearchPlayers("amu")
	vm.Wait()

	list := vm.List.Get()
	assert.Equal(t, StatusError, list.Status)
	assert.Equal(t, "remote store unavailable", list.Error)
	assert.False(t, list.IsLoading())
	assert.Len(t, list.Items, 2)
	assert.Equal(t, []string{"remote store unavailable"}, drain(vm.scope))
}

func TestPlayerViewModel_AddPlayer(t *testing.T) {
	players := newFakePlayers()
	vm := newPlayerVM(t, entity.Manager, players)

	vm.AddPlayer(validator.PlayerForm{FirstName: "Helena", LastName: "Nghipondoka", JerseyNumber: 11, DateOfBirth: testNow.AddDate(-19, 0, 0)})
	vm.Wait()

	state := vm.Player.Get()
	assert.Equal(t, StatusError, state.Status)
	assert.Contains(t, state.FieldErrors, "position")
	assert.Len(t, players.players, 3)

	vm.AddPlayer(validator.PlayerForm{
		FirstName:    " Helena ",
		LastName:     "Nghipondoka",
		Position:     string(entity.Midfielder),
		JerseyNumber: 11,
		DateOfBirth:  testNow.AddDate(-19, 0, 0),
	})
	vm.Wait()

	state = vm.Player.Get()
	assert.Equal(t, StatusSuccess, state.Status)
	assert.True(t, state.Success)
	require.NotNil(t, state.Item)
	assert.Equal(t, "Helena", state.Item.FirstName)
	assert.Equal(t, "t1", state.Item.TeamID)
	assert.Equal(t, entity.Midfielder, state.Item.Position)
	assert.Len(t, vm.List.Get().Items, 3)
}

func TestPlayerViewModel_TransferAndRemove(t *testing.T) {
	players := newFakePlayers()
	vm := newPlayerVM(t, entity.Coach, players)

	vm.TransferPlayer("p2", "t2")
	vm.Wait()
	assert.Equal(t, "t2", vm.Player.Get().Item.TeamID)
	require.Len(t, vm.List.Get().Items, 1)
	assert.Equal(t, "p1", vm.List.Get().Items[0].ID)

	vm.RemovePlayer("p1")
	vm.Wait()
	assert.True(t, vm.Player.Get().Success)
	assert.Empty(t, vm.List.Get().Items)

	vm.RemovePlayer("p1")
	vm.Wait()
	assert.Equal(t, StatusError, vm.Player.Get().Status)
	assert.Equal(t, errorz.ErrNotFound.Error(), vm.Player.Get().Error)
}

func TestPlayerViewModel_PlayerCannotManage(t *testing.T) {
	players := newFakePlayers()
	vm := newPlayerVM(t, entity.RolePlayer, players)

	vm.RemovePlayer("p1")
	vm.Wait()

	assert.Equal(t, StatusError, vm.Player.Get().Status)
	assert.Contains(t, vm.Player.Get().Error, errorz.ErrForbidden.Error())
	assert.Len(t, players.players, 3)
}
