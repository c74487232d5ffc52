package cache

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/dto"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

func (s *UserStorage) Upsert(ctx context.Context, user *entity.User) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(user).Error
}

func (s *UserStorage) UpsertMany(ctx context.Context, users []entity.User) error {
	if len(users) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&users).Error
}

// Deactivate clears the active flag, users are never removed.
func (s *UserStorage) Deactivate(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now().UTC()}).Error
}

func (s *UserStorage) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return &user, nil
}

func (s *UserStorage) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Order("last_name, first_name").Find(&users).Error
	return users, err
}

func (s *UserStorage) GetByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Where("role = ? AND is_active = ?", role, true).Find(&users).Error
	return users, err
}

func (s *UserStorage) Search(ctx context.Context, query string) ([]entity.User, error) {
	var users []entity.User
	pattern := likePattern(query)
	err := s.db.WithContext(ctx).
		Where("LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

func (s *UserStorage) ListItems(ctx context.Context) ([]dto.UserListItem, error) {
	var items []dto.UserListItem
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.first_name, users.last_name, users.email, users.role, users.team_id, teams.name AS team_name, users.is_active").
		Joins("LEFT JOIN teams ON teams.id = users.team_id").
		Order("users.last_name, users.first_name").
		Scan(&items).Error
	return items, err
}

var userOrders = map[dto.UserOrder]string{
	dto.UserOrderName:   "last_name, first_name",
	dto.UserOrderEmail:  "email",
	dto.UserOrderNewest: "created_at DESC, id",
}

// GetWithPagination is a function that gets a page of cached users.
func (s *UserStorage) GetWithPagination(ctx context.Context, offset, limit int, order dto.UserOrder) ([]entity.User, error) {
	column, ok := userOrders[order]
	if !ok {
		return nil, fmt.Errorf("%w: unknown user order %q", errorz.ErrInvalidInput, order)
	}
	var users []entity.User
	err := s.db.WithContext(ctx).Order(column).Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}
