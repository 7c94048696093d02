package repositories

import (
	"context"

	"jotter/internal/database/models"
	"jotter/internal/metrics"

	"gorm.io/gorm"
)

// NoteRepository mirrors UserRepository for notes. Listings preload the
// author projection; the author is loaded unscoped so a note written by a
// since-deleted user still carries its attribution.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	GetAll(ctx context.Context, includeDeleted bool) ([]models.Note, error)
	GetAllByUser(ctx context.Context, userID uint, includeDeleted bool) ([]models.Note, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	timer := metrics.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		metrics.TrackError("database")
		return translate(err)
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	timer := metrics.TrackDBOperation("select", "notes")
	defer timer.ObserveDuration()

	var note models.Note
	err := r.db.WithContext(ctx).Unscoped().Preload("Author", withAuthor).First(&note, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &note, nil
}

func (r *noteRepository) GetAll(ctx context.Context, includeDeleted bool) ([]models.Note, error) {
	timer := metrics.TrackDBOperation("select", "notes")
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx)
	if includeDeleted {
		query = query.Unscoped()
	}
	var notes []models.Note
	if err := query.Preload("Author", withAuthor).Order("id").Find(&notes).Error; err != nil {
		return nil, translate(err)
	}
	return notes, nil
}

func (r *noteRepository) GetAllByUser(ctx context.Context, userID uint, includeDeleted bool) ([]models.Note, error) {
	timer := metrics.TrackDBOperation("select", "notes")
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx)
	if includeDeleted {
		query = query.Unscoped()
	}
	var notes []models.Note
	err := query.Preload("Author", withAuthor).Where("user_id = ?", userID).Order("id").Find(&notes).Error
	if err != nil {
		return nil, translate(err)
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	timer := metrics.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Unscoped().Model(&models.Note{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		metrics.TrackError("database")
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
