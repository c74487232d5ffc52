package viewmodel

import (
	"context"
	"time"

	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
)

const formErrorMessage = "Please fix the highlighted fields"

func itemLoading[T any](st *Store[ItemState[T]]) {
	st.Update(func(s ItemState[T]) ItemState[T] {
		s.Status = StatusLoading
		s.Error = ""
		s.Success = false
		s.FieldErrors = nil
		return s
	})
}

// itemDone stores the outcome of an item operation and reports whether it succeeded.
// mutation marks operations whose success the screen acknowledges (saved, registered...).
func itemDone[T any](sc *scope, st *Store[ItemState[T]], op string, item *T, err error, mutation bool) bool {
	if err != nil {
		msg := sc.fail(op, err)
		st.Update(func(s ItemState[T]) ItemState[T] {
			s.Status = StatusError
			s.Error = msg
			s.Success = false
			return s
		})
		return false
	}
	st.Set(ItemState[T]{Status: StatusSuccess, Item: item, Success: mutation})
	return true
}

// clearResult resets the success flag and errors once the screen has shown them.
func clearResult[T any](st *Store[ItemState[T]]) {
	st.Update(func(s ItemState[T]) ItemState[T] {
		s.Success = false
		s.Error = ""
		s.FieldErrors = nil
		if s.Status == StatusError {
			s.Status = StatusIdle
		}
		return s
	})
}

func listLoading[T any](st *Store[ListState[T]]) {
	st.Update(func(s ListState[T]) ListState[T] {
		s.Status = StatusLoading
		s.Error = ""
		return s
	})
}

// listFailed keeps the items already shown and records the error message.
func listFailed[T any](sc *scope, st *Store[ListState[T]], op string, err error) {
	msg := sc.fail(op, err)
	st.Update(func(s ListState[T]) ListState[T] {
		s.Status = StatusError
		s.Error = msg
		return s
	})
}

// loadPage runs fetch and either replaces the list with its first page or,
// when more is set, appends the next unseen page.
func loadPage[T any](
	ctx context.Context,
	sc *scope,
	st *Store[ListState[T]],
	op string,
	fetch func(ctx context.Context) ([]T, error),
	id func(T) string,
	size int,
	more bool,
) {
	if more {
		current := st.Get()
		if current.IsLoading() || !current.HasMore {
			return
		}
	}
	listLoading(st)

	items, err := fetch(ctx)
	if err != nil {
		listFailed(sc, st, op, err)
		return
	}
	st.Update(func(s ListState[T]) ListState[T] {
		var current []T
		if more {
			current = s.Items
		}
		page, hasMore := nextPage(current, items, id, size)
		return ListState[T]{Status: StatusSuccess, Items: page, HasMore: hasMore}
	})
}

// allowed runs the policy check for action and reports a denial on st.
func allowed[T any](sc *scope, session Session, st *Store[ItemState[T]], action policy.Action) bool {
	err := session.Check(action)
	if err == nil {
		return true
	}
	msg := sc.fail(string(action), err)
	st.Update(func(s ItemState[T]) ItemState[T] {
		s.Status = StatusError
		s.Error = msg
		s.Success = false
		return s
	})
	return false
}

// validForm reports field errors on st; an invalid form is never submitted.
func validForm[T any](st *Store[ItemState[T]], form interface{}, now time.Time) bool {
	errs := validator.ValidateForm(form, now)
	if len(errs) == 0 {
		return true
	}
	st.Update(func(s ItemState[T]) ItemState[T] {
		s.Status = StatusError
		s.Error = formErrorMessage
		s.Success = false
		s.FieldErrors = errs
		return s
	})
	return false
}
