package dto

import "github.com/nhu-hockey/nhu-app/internal/domain/entity"

type UserListItem struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      entity.Role
	TeamID    string
	TeamName  string
	IsActive  bool
}

// UserOrder names a sort order of the admin user list.
type UserOrder string

const (
	UserOrderName   UserOrder = "name"
	UserOrderEmail  UserOrder = "email"
	UserOrderNewest UserOrder = "newest"
)
