package repositories

import (
	"context"

	"jotter/internal/database/models"
	"jotter/internal/metrics"

	"gorm.io/gorm"
)

// UserRepository is the persistence collaborator consumed by the lifecycle
// policy engine. Id- and username-keyed lookups see soft-deleted rows too:
// deleted users stay fetchable for undelete, and their usernames stay
// reserved.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetAll(ctx context.Context, includeDeleted bool) ([]models.User, error)
	// Update applies the given column values to the row with the given id,
	// deleted or not. updated_at is touched automatically.
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	timer := metrics.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		metrics.TrackError("database")
		return translate(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	timer := metrics.TrackDBOperation("select", "users")
	defer timer.ObserveDuration()

	var user models.User
	err := r.db.WithContext(ctx).Unscoped().First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	timer := metrics.TrackDBOperation("select", "users")
	defer timer.ObserveDuration()

	var user models.User
	err := r.db.WithContext(ctx).Unscoped().Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context, includeDeleted bool) ([]models.User, error) {
	timer := metrics.TrackDBOperation("select", "users")
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx)
	if includeDeleted {
		query = query.Unscoped()
	}
	var users []models.User
	if err := query.Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	timer := metrics.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Unscoped().Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		metrics.TrackError("database")
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
