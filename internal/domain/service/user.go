package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type UserCache interface {
	Upsert(ctx context.Context, user *entity.User) error
	UpsertMany(ctx context.Context, users []entity.User) error
	Deactivate(ctx context.Context, id string) error
	GetWithPagination(ctx context.Context, offset, limit int, order dto.UserOrder) ([]entity.User, error)
}

type UserService struct {
	logger *types.Logger

	documents DocumentStore
	cache     UserCache
	clock     clockwork.Clock
}

func NewUserService(logger *types.Logger, documents DocumentStore, cache UserCache, clock clockwork.Clock) *UserService {
	return &UserService{
		logger:    logger,
		documents: documents,
		cache:     cache,
		clock:     clock,
	}
}

// Register creates the profile of a freshly authenticated account.
// id is the account id of the authentication provider; an empty id gets a new UUID.
func (s *UserService) Register(ctx context.Context, id, email, firstName, lastName string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := getAllDocuments(ctx, s.documents, usersCollection, entity.UserFromMap)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, fmt.Errorf("%w: email %s is already registered", errorz.ErrInvalidInput, email)
		}
	}

	if id == "" {
		id = uuid.NewString()
	}
	user := entity.NewUser(id, email, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	now := s.clock.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.LastLoginAt = now

	if err = s.save(ctx, &user); err != nil {
		return nil, err
	}
	s.logger.Infof("User registered (user_id=%s)", user.ID)
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := getDocument(ctx, s.documents, usersCollection, id, entity.UserFromMap)
	if err != nil {
		return nil, err
	}
	s.cacheUser(ctx, user)
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	users, err := getAllDocuments(ctx, s.documents, usersCollection, entity.UserFromMap)
	if err != nil {
		return nil, err
	}
	sortBy(users, func(a, b entity.User) bool {
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})
	if err = s.cache.UpsertMany(ctx, users); err != nil {
		s.logger.Warnf("failed to cache users: %v", err)
	}
	return users, nil
}

// UpdateProfile saves the fields a user edits on their own profile.
// Email, role and the active flag are kept from the stored user.
func (s *UserService) UpdateProfile(ctx context.Context, profile *entity.User) (*entity.User, error) {
	user, err := s.Get(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(profile.FirstName)
	user.LastName = strings.TrimSpace(profile.LastName)
	user.PhoneNumber = profile.PhoneNumber
	user.TeamID = profile.TeamID
	user.ProfileImageURL = profile.ProfileImageURL
	user.DateOfBirth = profile.DateOfBirth
	user.Address = profile.Address
	user.EmergencyContact = profile.EmergencyContact
	user.Preferences = profile.Preferences
	user.UpdatedAt = s.clock.Now().UTC()

	if err = s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate clears the active flag. Users are never removed.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	user.UpdatedAt = s.clock.Now().UTC()
	if err = setDocument(ctx, s.documents, usersCollection, user.ID, user.ToMap()); err != nil {
		return err
	}
	if err = s.cache.Deactivate(ctx, id); err != nil {
		s.logger.Warnf("failed to deactivate cached user %s: %v", id, err)
	}
	s.logger.Infof("User deactivated (user_id=%s)", id)
	return nil
}

// GetPage returns page number page (from 0) of the cached users, size users per page.
func (s *UserService) GetPage(ctx context.Context, page, size int, order dto.UserOrder) ([]entity.User, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page %d of size %d", errorz.ErrInvalidInput, page, size)
	}
	users, err := s.cache.GetWithPagination(ctx, page*size, size, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached users: %w", err)
	}
	return users, nil
}

func (s *UserService) SetRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", errorz.ErrInvalidInput, role)
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := user.Role
	user.Role = role
	user.UpdatedAt = s.clock.Now().UTC()
	if err = s.save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Infof("User role changed (user_id=%s, from=%s, to=%s)", id, previous, role)
	return user, nil
}

func (s *UserService) RecordLogin(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.LastLoginAt = s.clock.Now().UTC()
	if err = s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) save(ctx context.Context, user *entity.User) error {
	if err := setDocument(ctx, s.documents, usersCollection, user.ID, user.ToMap()); err != nil {
		return err
	}
	s.cacheUser(ctx, user)
	return nil
}

func (s *UserService) cacheUser(ctx context.Context, user *entity.User) {
	if err := s.cache.Upsert(ctx, user); err != nil {
		s.logger.Warnf("failed to cache user %s: %v", user.ID, err)
	}
}
