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

type eventService interface {
	GetAll(ctx context.Context) ([]entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	Create(ctx context.Context, event entity.Event) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
	RegisterForEvent(ctx context.Context, eventID string, team *entity.Team, userID string) (*entity.Event, error)
	UnregisterFromEvent(ctx context.Context, eventID, teamID string) (*entity.Event, error)
	Search(ctx context.Context, query string) ([]entity.Event, error)
}

// EventViewModel backs the event list, event detail and event entry screens.
type EventViewModel struct {
	*scope

	session  Session
	events   eventService
	clock    clockwork.Clock
	pageSize int

	Event *Store[ItemState[entity.Event]]
	List  *Store[ListState[entity.Event]]
}

func NewEventViewModel(
	ctx context.Context,
	logger *types.Logger,
	session Session,
	events eventService,
	clock clockwork.Clock,
	pageSize int,
) *EventViewModel {
	return &EventViewModel{
		scope:    newScope(ctx, logger),
		session:  session,
		events:   events,
		clock:    clock,
		pageSize: pageSize,
		Event:    NewStore(ItemState[entity.Event]{}),
		List:     NewStore(ListState[entity.Event]{}),
	}
}

func eventID(e entity.Event) string { return e.ID }

// LoadEvents replaces the list with the first page of events.
func (vm *EventViewModel) LoadEvents() {
	vm.launch(func(ctx context.Context) { vm.loadEvents(ctx, false) })
}

func (vm *EventViewModel) LoadMore() {
	vm.launch(func(ctx context.Context) { vm.loadEvents(ctx, true) })
}

func (vm *EventViewModel) loadEvents(ctx context.Context, more bool) {
	loadPage(ctx, vm.scope, vm.List, "load events", vm.events.GetAll, eventID, vm.pageSize, more)
}

// Search filters the list by title, description or place. An empty query reloads the list.
func (vm *EventViewModel) Search(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		vm.LoadEvents()
		return
	}
	vm.launch(func(ctx context.Context) {
		listLoading(vm.List)
		events, err := vm.events.Search(ctx, query)
		if err != nil {
			listFailed(vm.scope, vm.List, "search events", err)
			return
		}
		vm.List.Set(ListState[entity.Event]{Status: StatusSuccess, Items: events})
	})
}

func (vm *EventViewModel) LoadEvent(id string) {
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Event)
		event, err := vm.events.Get(ctx, id)
		itemDone(vm.scope, vm.Event, "load event", event, err, false)
	})
}

// CreateEvent validates form and creates the event.
func (vm *EventViewModel) CreateEvent(form validator.EventForm, eventType entity.EventType, venue string) {
	if !allowed(vm.scope, vm.session, vm.Event, policy.ActionManageEvents) || !validForm(vm.Event, form, vm.clock.Now()) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Event)
		event, err := vm.events.Create(ctx, entity.Event{
			Title:                strings.TrimSpace(form.Title),
			Description:          strings.TrimSpace(form.Description),
			Type:                 eventType,
			StartDate:            form.StartDate,
			EndDate:              form.EndDate,
			RegistrationDeadline: form.RegistrationDeadline,
			Location:             strings.TrimSpace(form.Location),
			Venue:                strings.TrimSpace(venue),
			MaxTeams:             form.MaxTeams,
			EntryFee:             form.EntryFee,
			CreatedBy:            vm.session.UserID,
		})
		if itemDone(vm.scope, vm.Event, "create event", event, err, true) {
			vm.loadEvents(ctx, false)
		}
	})
}

func (vm *EventViewModel) UpdateEvent(event *entity.Event) {
	if !allowed(vm.scope, vm.session, vm.Event, policy.ActionManageEvents) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Event)
		updated, err := vm.events.Update(ctx, event)
		if itemDone(vm.scope, vm.Event, "update event", updated, err, true) {
			vm.loadEvents(ctx, false)
		}
	})
}

func (vm *EventViewModel) DeleteEvent(id string) {
	if !allowed(vm.scope, vm.session, vm.Event, policy.ActionManageEvents) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Event)
		err := vm.events.Delete(ctx, id)
		if itemDone(vm.scope, vm.Event, "delete event", nil, err, true) {
			vm.loadEvents(ctx, false)
		}
	})
}

// RegisterForEvent enters team into the event and refreshes the list on success.
func (vm *EventViewModel) RegisterForEvent(eventID string, team *entity.Team) {
	if !allowed(vm.scope, vm.session, vm.Event, policy.ActionRegisterTeam) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Event)
		event, err := vm.events.RegisterForEvent(ctx, eventID, team, vm.session.UserID)
		if itemDone(vm.scope, vm.Event, "register for event", event, err, true) {
			vm.post("Team registered for " + event.Title)
			vm.loadEvents(ctx, false)
		}
	})
}

func (vm *EventViewModel) UnregisterFromEvent(eventID, teamID string) {
	if !allowed(vm.scope, vm.session, vm.Event, policy.ActionRegisterTeam) {
		return
	}
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Event)
		event, err := vm.events.UnregisterFromEvent(ctx, eventID, teamID)
		if itemDone(vm.scope, vm.Event, "unregister from event", event, err, true) {
			vm.loadEvents(ctx, false)
		}
	})
}

func (vm *EventViewModel) ClearResult() {
	clearResult(vm.Event)
}
