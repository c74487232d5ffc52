package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
)

type fakeEvents struct {
	mu      sync.Mutex
	events  []entity.Event
	err     error
	getAlls int
	creates int
}

func newFakeEvents(n int) *fakeEvents {
	f := &fakeEvents{}
	for i := 1; i <= n; i++ {
		f.events = append(f.events, entity.Event{ID: fmt.Sprintf("e%d", i), Title: fmt.Sprintf("Event %d", i)})
	}
	return f
}

func (f *fakeEvents) GetAll(context.Context) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getAlls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.Event(nil), f.events...), nil
}

func (f *fakeEvents) find(id string) (int, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return i, nil
		}
	}
	return -1, errorz.ErrNotFound
}

func (f *fakeEvents) Get(_ context.Context, id string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(id)
	if err != nil {
		return nil, err
	}
	event := f.events[i]
	return &event, nil
}

func (f *fakeEvents) Create(_ context.Context, event entity.Event) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	event.ID = fmt.Sprintf("e%d", len(f.events)+1)
	f.events = append(f.events, event)
	return &event, nil
}

func (f *fakeEvents) Update(_ context.Context, event *entity.Event) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(event.ID)
	if err != nil {
		return nil, err
	}
	f.events[i] = *event
	return event, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(id)
	if err != nil {
		return err
	}
	f.events = append(f.events[:i], f.events[i+1:]...)
	return nil
}

func (f *fakeEvents) RegisterForEvent(_ context.Context, eventID string, team *entity.Team, _ string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if team == nil {
		return nil, fmt.Errorf("%w: no team selected", errorz.ErrInvalidInput)
	}
	i, err := f.find(eventID)
	if err != nil {
		return nil, err
	}
	if f.events[i].IsTeamRegistered(team.ID) {
		return nil, errorz.ErrAlreadyRegistered
	}
	f.events[i].RegisteredTeams = append(f.events[i].RegisteredTeams, team.ID)
	event := f.events[i]
	return &event, nil
}

func (f *fakeEvents) UnregisterFromEvent(_ context.Context, eventID, teamID string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, err := f.find(eventID)
	if err != nil {
		return nil, err
	}
	if !f.events[i].IsTeamRegistered(teamID) {
		return nil, errorz.ErrNotRegistered
	}
	f.events[i].RegisteredTeams = f.events[i].RegisteredTeams.Without(teamID)
	event := f.events[i]
	return &event, nil
}

func (f *fakeEvents) Search(context.Context, string) ([]entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[:1], f.err
}

func newEventVM(t *testing.T, role entity.Role, events *fakeEvents, pageSize int) *EventViewModel {
	t.Helper()
	vm := NewEventViewModel(context.Background(), testLogger, sessionAs(role), events, testClock(), pageSize)
	t.Cleanup(vm.Close)
	return vm
}

func TestEventViewModel_RegisterRefreshesList(t *testing.T) {
	events := newFakeEvents(2)
	vm := newEventVM(t, entity.Coach, events, 10)
	team := &entity.Team{ID: "t1", Name: "Saints"}

	vm.LoadEvents()
	vm.Wait()
	require.Len(t, vm.List.Get().Items, 2)
	assert.False(t, vm.List.Get().Items[0].IsTeamRegistered(team.ID))

	vm.LoadEvent("e1")
	vm.Wait()
	before := vm.Event.Get()
	require.NotNil(t, before.Item)
	assert.False(t, before.Item.IsTeamRegistered(team.ID))
	assert.False(t, before.Success)

	vm.RegisterForEvent("e1", team)
	vm.Wait()

	after := vm.Event.Get()
	assert.Equal(t, StatusSuccess, after.Status)
	assert.True(t, after.Success)
	require.NotNil(t, after.Item)
	assert.True(t, after.Item.IsTeamRegistered(team.ID))

	list := vm.List.Get()
	assert.Equal(t, StatusSuccess, list.Status)
	assert.True(t, list.Items[0].IsTeamRegistered(team.ID))
	assert.Equal(t, 2, events.getAlls)
	assert.Contains(t, drain(vm.scope), "Team registered for Event 1")

	vm.ClearResult()
	assert.False(t, vm.Event.Get().Success)
}

func TestEventViewModel_RegisterFailure(t *testing.T) {
	events := newFakeEvents(1)
	vm := newEventVM(t, entity.Coach, events, 10)
	team := &entity.Team{ID: "t1"}

	vm.RegisterForEvent("e1", team)
	vm.Wait()
	vm.RegisterForEvent("e1", team)
	vm.Wait()

	state := vm.Event.Get()
	assert.Equal(t, StatusError, state.Status)
	assert.False(t, state.Success)
	assert.Equal(t, errorz.ErrAlreadyRegistered.Error(), state.Error)
	assert.Contains(t, drain(vm.scope), errorz.ErrAlreadyRegistered.Error())
}

func TestEventViewModel_RegisterWithoutTeam(t *testing.T) {
	events := newFakeEvents(1)
	vm := newEventVM(t, entity.Coach, events, 10)

	vm.RegisterForEvent("e1", nil)
	vm.Wait()

	state := vm.Event.Get()
	assert.Equal(t, StatusError, state.Status)
	assert.Contains(t, state.Error, errorz.ErrInvalidInput.Error())
	assert.Len(t, drain(vm.scope), 1)
	assert.Empty(t, events.events[0].RegisteredTeams)
}

func TestEventViewModel_LoadFailure(t *testing.T) {
	events := newFakeEvents(0)
	events.err = errors.New("remote store unavailable")
	vm := newEventVM(t, entity.RolePlayer, events, 10)

	vm.LoadEvents()
	vm.Wait()

	list := vm.List.Get()
	assert.Equal(t, "remote store unavailable", list.Error)
	assert.False(t, list.IsLoading())
	assert.Equal(t, StatusError, list.Status)
	assert.Equal(t, []string{"remote store unavailable"}, drain(vm.scope))
}

func TestEventViewModel_LoadMore(t *testing.T) {
	events := newFakeEvents(5)
	vm := newEventVM(t, entity.RolePlayer, events, 2)

	vm.LoadEvents()
	vm.Wait()
	assert.Len(t, vm.List.Get().Items, 2)
	assert.True(t, vm.List.Get().HasMore)

	vm.LoadMore()
	vm.Wait()
	vm.LoadMore()
	vm.Wait()

	list := vm.List.Get()
	require.Len(t, list.Items, 5)
	assert.False(t, list.HasMore)
	assert.Equal(t, "e5", list.Items[4].ID)

	vm.LoadMore()
	vm.Wait()
	assert.Equal(t, 3, events.getAlls)
}

func TestEventViewModel_CreateValidation(t *testing.T) {
	events := newFakeEvents(0)
	vm := newEventVM(t, entity.Admin, events, 10)

	vm.CreateEvent(validator.EventForm{Title: "Cup", Location: "Windhoek"}, entity.EventTournament, "")
	vm.Wait()

	state := vm.Event.Get()
	assert.Equal(t, StatusError, state.Status)
	assert.Contains(t, state.FieldErrors, "title")
	assert.Zero(t, events.creates)

	start := testNow.Add(72 * time.Hour)
	vm.CreateEvent(validator.EventForm{
		Title:     "Indoor Nationals",
		Location:  "Windhoek",
		StartDate: start,
		EndDate:   start.Add(8 * time.Hour),
	}, entity.EventTournament, "Ramatex Hall")
	vm.Wait()

	state = vm.Event.Get()
	assert.Equal(t, StatusSuccess, state.Status)
	assert.True(t, state.Success)
	assert.Empty(t, state.FieldErrors)
	assert.Equal(t, "u-admin", state.Item.CreatedBy)
	assert.Equal(t, 1, events.creates)
	assert.Len(t, vm.List.Get().Items, 1)
}

func TestEventViewModel_CreateForbidden(t *testing.T) {
	events := newFakeEvents(0)
	vm := newEventVM(t, entity.Coach, events, 10)

	start := testNow.Add(72 * time.Hour)
	vm.CreateEvent(validator.EventForm{Title: "Indoor Nationals", Location: "Windhoek", StartDate: start, EndDate: start.Add(time.Hour)}, entity.EventTournament, "")
	vm.Wait()

	assert.Equal(t, StatusError, vm.Event.Get().Status)
	assert.Contains(t, vm.Event.Get().Error, errorz.ErrForbidden.Error())
	assert.Zero(t, events.creates)
}

func TestEventViewModel_CloseStopsWork(t *testing.T) {
	events := newFakeEvents(1)
	vm := NewEventViewModel(context.Background(), testLogger, sessionAs(entity.RolePlayer), events, testClock(), 10)
	vm.Close()

	vm.LoadEvents()
	vm.Wait()
	assert.Zero(t, events.getAlls)
	assert.Equal(t, StatusIdle, vm.List.Get().Status)
}
