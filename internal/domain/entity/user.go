package entity

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	Admin      Role = "admin"
	Coach      Role = "coach"
	Manager    Role = "manager"
	RolePlayer Role = "player"
)

func (r Role) Valid() bool {
	switch r {
	case Admin, Coach, Manager, RolePlayer:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a Address) ToMap() Document {
	return Document{
		"street":     a.Street,
		"city":       a.City,
		"region":     a.Region,
		"postalCode": a.PostalCode,
		"country":    a.Country,
	}
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phoneNumber"`
}

func (c EmergencyContact) ToMap() Document {
	return Document{
		"name":         c.Name,
		"relationship": c.Relationship,
		"phoneNumber":  c.PhoneNumber,
	}
}

type Preferences struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	EmailNotifications   bool   `json:"emailNotifications"`
	PushNotifications    bool   `json:"pushNotifications"`
	Language             string `json:"language"`
	Theme                string `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		NotificationsEnabled: true,
		EmailNotifications:   true,
		PushNotifications:    true,
		Language:             "en",
		Theme:                "system",
	}
}

func (p Preferences) ToMap() Document {
	return Document{
		"notificationsEnabled": p.NotificationsEnabled,
		"emailNotifications":   p.EmailNotifications,
		"pushNotifications":    p.PushNotifications,
		"language":             p.Language,
		"theme":                p.Theme,
	}
}

// User is never hard-deleted; IsActive is cleared instead.
type User struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	Email            string           `json:"email" gorm:"index"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	PhoneNumber      string           `json:"phoneNumber"`
	Role             Role             `json:"role" gorm:"index"`
	TeamID           string           `json:"teamId"`
	ProfileImageURL  string           `json:"profileImageUrl"`
	DateOfBirth      time.Time        `json:"dateOfBirth"`
	Address          Address          `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	EmergencyContact EmergencyContact `json:"emergencyContact" gorm:"embedded;embeddedPrefix:emergency_"`
	Preferences      Preferences      `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	LastLoginAt      time.Time        `json:"lastLoginAt"`
}

// NewUser returns a user with the registration defaults applied.
func NewUser(id, email, firstName, lastName string) User {
	return User{
		ID:          id,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Role:        RolePlayer,
		Address:     Address{Country: "Namibia"},
		Preferences: DefaultPreferences(),
		IsActive:    true,
	}
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) Age(now time.Time) int {
	return ageAt(u.DateOfBirth, now)
}

func (u *User) IsAdmin() bool {
	return u.Role == Admin
}

// IsStaff reports whether the user runs a team (coach or manager).
func (u *User) IsStaff() bool {
	return u.Role == Coach || u.Role == Manager
}

func (u *User) ToMap() Document {
	return Document{
		"id":               u.ID,
		"email":            u.Email,
		"firstName":        u.FirstName,
		"lastName":         u.LastName,
		"phoneNumber":      u.PhoneNumber,
		"role":             string(u.Role),
		"teamId":           u.TeamID,
		"profileImageUrl":  u.ProfileImageURL,
		"dateOfBirth":      u.DateOfBirth,
		"address":          u.Address.ToMap(),
		"emergencyContact": u.EmergencyContact.ToMap(),
		"preferences":      u.Preferences.ToMap(),
		"isActive":         u.IsActive,
		"createdAt":        u.CreatedAt,
		"updatedAt":        u.UpdatedAt,
		"lastLoginAt":      u.LastLoginAt,
	}
}

func UserFromMap(doc Document) (*User, error) {
	var user User
	if err := decodeDocument(doc, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
