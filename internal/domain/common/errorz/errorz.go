package errorz

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDocument = errors.New("invalid document")

	ErrRegistrationClosed = errors.New("registration for this event is closed")
	ErrEventFull          = errors.New("event has reached the maximum number of teams")
	ErrAlreadyRegistered  = errors.New("team is already registered for this event")
	ErrNotRegistered      = errors.New("team is not registered for this event")

	ErrJerseyTaken = errors.New("jersey number is already taken in this team")

	ErrRequestNotPending    = errors.New("role change request is not pending")
	ErrPendingRequestExists = errors.New("a pending role change request already exists")

	ErrMatchNotLive   = errors.New("match is not live")
	ErrMatchCompleted = errors.New("match is already completed")
	ErrTeamNotInMatch = errors.New("team does not play in this match")
)

// Message renders err as the text shown to the user in a transient message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}
