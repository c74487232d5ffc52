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

type fakeTeams struct {
	mu       sync.Mutex
	teams    []entity.Team
	err      error
	getAlls  int
	creates  int
	searches []string
}

func (f *fakeTeams) GetAll(context.Context) ([]entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getAlls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.Team(nil), f.teams...), nil
}

func (f *fakeTeams) Get(_ context.Context, id string) (*entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.teams {
		if f.teams[i].ID == id {
			team := f.teams[i]
			return &team, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeTeams) Create(_ context.Context, team entity.Team) (*entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	team.ID = fmt.Sprintf("t%d", len(f.teams)+1)
	f.teams = append(f.teams, team)
	return &team, nil
}

func (f *fakeTeams) Update(_ context.Context, team *entity.Team) (*entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.teams {
		if f.teams[i].ID == team.ID {
			f.teams[i] = *team
			return team, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeTeams) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.teams {
		if f.teams[i].ID == id {
			f.teams = append(f.teams[:i], f.teams[i+1:]...)
			return nil
		}
	}
	return errorz.ErrNotFound
}

func (f *fakeTeams) GetByCreator(_ context.Context, userID string) ([]entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Team
	for _, team := range f.teams {
		if team.CreatedBy == userID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (f *fakeTeams) Search(_ context.Context, query string) ([]entity.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Team
	for _, team := range f.teams {
		if strings.Contains(strings.ToLower(team.Name), strings.ToLower(query)) {
			out = append(out, team)
		}
	}
	return out, nil
}

func newFakeTeams() *fakeTeams {
	return &fakeTeams{teams: []entity.Team{
		{ID: "t1", Name: "Saints", CreatedBy: "u-coach"},
		{ID: "t2", Name: "Wanderers", CreatedBy: "u-manager"},
		{ID: "t3", Name: "Windhoek Old Boys", CreatedBy: "u-coach"},
	}}
}

func newTeamVM(t *testing.T, role entity.Role, teams *fakeTeams) *TeamViewModel {
	t.Helper()
	vm := NewTeamViewModel(context.Background(), testLogger, sessionAs(role), teams, testClock())
	t.Cleanup(vm.Close)
	return vm
}

func TestTeamViewModel_Search(t *testing.T) {
	teams := newFakeTeams()
	vm := newTeamVM(t, entity.RolePlayer, teams)

	vm.Search("  SAINTS ")
	vm.Wait()

	list := vm.List.Get()
	assert.Equal(t, StatusSuccess, list.Status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "t1", list.Items[0].ID)
	assert.Equal(t, []string{"SAINTS"}, teams.searches)

	vm.Search("   ")
	vm.Wait()

	assert.Len(t, vm.List.Get().Items, 3)
	assert.Equal(t, 1, teams.getAlls)
	assert.Len(t, teams.searches, 1)
}

func TestTeamViewModel_SearchFailureKeepsList(t *testing.T) {
	teams := newFakeTeams()
	vm := newTeamVM(t, entity.RolePlayer, teams)

	vm.LoadTeams()
	vm.Wait()
	require.Len(t, vm.List.Get().Items, 3)

	teams.err = errors.New("remote store unavailable")
	vm.Search("saints")
	vm.Wait()

	list := vm.List.Get()
	assert.Equal(t, StatusError, list.Status)
	assert.Equal(t, "remote store unavailable", list.Error)
	assert.False(t, list.IsLoading())
	assert.Len(t, list.Items, 3)
	assert.Equal(t, []string{"remote store unavailable"}, drain(vm.scope))
}

func TestTeamViewModel_LoadMyTeams(t *testing.T) {
	vm := newTeamVM(t, entity.Coach, newFakeTeams())

	vm.LoadMyTeams()
	vm.Wait()

	list := vm.List.Get()
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Saints", list.Items[0].Name)
	assert.Equal(t, "Windhoek Old Boys", list.Items[1].Name)
}

func TestTeamViewModel_RegisterTeam(t *testing.T) {
	teams := newFakeTeams()
	vm := newTeamVM(t, entity.Coach, teams)

	vm.RegisterTeam(validator.TeamForm{Name: "DT", Category: "men"}, "")
	vm.Wait()

	state := vm.Team.Get()
	assert.Equal(t, StatusError, state.Status)
	assert.Contains(t, state.FieldErrors, "name")
	assert.Zero(t, teams.creates)

	vm.RegisterTeam(validator.TeamForm{Name: " Coastal Raiders ", Category: "women", CoachName: "Maria Amukoto"}, " Swakopmund ")
	vm.Wait()

	state = vm.Team.Get()
	assert.Equal(t, StatusSuccess, state.Status)
	assert.True(t, state.Success)
	require.NotNil(t, state.Item)
	assert.Equal(t, "Coastal Raiders", state.Item.Name)
	assert.Equal(t, entity.CategoryWomen, state.Item.Category)
	assert.Equal(t, "Swakopmund", state.Item.HomeVenue)
	assert.Equal(t, "u-coach", state.Item.CreatedBy)
	assert.Equal(t, testNow.Year(), state.Item.FoundedYear)
	assert.Len(t, vm.List.Get().Items, 4)
	assert.Contains(t, drain(vm.scope), "Coastal Raiders registered")
}

func TestTeamViewModel_PlayerCannotRegister(t *testing.T) {
	teams := newFakeTeams()
	vm := newTeamVM(t, entity.RolePlayer, teams)

	vm.RegisterTeam(validator.TeamForm{Name: "Coastal Raiders", Category: "women"}, "")
	vm.Wait()

	assert.Equal(t, StatusError, vm.Team.Get().Status)
	assert.Contains(t, vm.Team.Get().Error, errorz.ErrForbidden.Error())
	assert.Zero(t, teams.creates)

	vm.DeleteTeam("t1")
	vm.Wait()
	assert.Len(t, teams.teams, 3)
}

func TestTeamViewModel_DeleteMissing(t *testing.T) {
	vm := newTeamVM(t, entity.Admin, newFakeTeams())

	vm.DeleteTeam("t9")
	vm.Wait()

	state := vm.Team.Get()
	assert.Equal(t, StatusError, state.Status)
	assert.False(t, state.Success)
	assert.Equal(t, errorz.Message(errorz.ErrNotFound), state.Error)
}
