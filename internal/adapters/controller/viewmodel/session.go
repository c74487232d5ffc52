package viewmodel

import (
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
)

// Session is the signed-in user the view-models act for.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   entity.Role
	TeamID string
}

func NewSession(user *entity.User) Session {
	return Session{
		UserID: user.ID,
		Name:   user.FullName(),
		Email:  user.Email,
		Role:   user.Role,
		TeamID: user.TeamID,
	}
}

func (s Session) Can(action policy.Action) bool {
	return policy.Allowed(s.Role, action)
}

func (s Session) Check(action policy.Action) error {
	return policy.Check(s.Role, action)
}

// User returns the session as the reviewer/actor entity the services expect.
func (s Session) User() *entity.User {
	return &entity.User{ID: s.UserID, Email: s.Email, Role: s.Role, TeamID: s.TeamID}
}
