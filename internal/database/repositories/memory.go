package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"jotter/internal/database/models"

	"gorm.io/gorm"
)

// MemoryUserRepository is an in-memory UserRepository. It mimics the Postgres
// behavior the GORM implementation relies on, including the unique index on
// username, so the policy engine can be exercised without a database.
type MemoryUserRepository struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*models.User

	// FailWith, when set, is returned by every call. Tests use it to probe
	// the INTERNAL_ERROR paths.
	FailWith error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uint]*models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return ErrDuplicate
		}
	}
	r.seq++
	now := time.Now()
	user.ID = r.seq
	user.CreatedAt = now
	user.UpdatedAt = now
	user.DeletedAt = gorm.DeletedAt{}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) GetAll(ctx context.Context, includeDeleted bool) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	var users []models.User
	for _, user := range r.users {
		if !includeDeleted && user.DeletedAt.Valid {
			continue
		}
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := fields["username"]; ok {
		username := v.(string)
		for _, other := range r.users {
			if other.ID != id && other.Username == username {
				return ErrDuplicate
			}
		}
		user.Username = username
	}
	if v, ok := fields["password"]; ok {
		user.Password = v.(string)
	}
	if v, ok := fields["deleted_at"]; ok {
		if v == nil {
			user.DeletedAt = gorm.DeletedAt{}
		} else {
			user.DeletedAt = gorm.DeletedAt{Time: v.(time.Time), Valid: true}
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

// MemoryNoteRepository is the in-memory NoteRepository counterpart. It takes
// the user store so it can resolve authors and enforce the foreign key.
type MemoryNoteRepository struct {
	mu    sync.Mutex
	seq   uint
	notes map[uint]*models.Note
	users *MemoryUserRepository

	FailWith error
}

func NewMemoryNoteRepository(users *MemoryUserRepository) *MemoryNoteRepository {
	return &MemoryNoteRepository{notes: make(map[uint]*models.Note), users: users}
}

func (r *MemoryNoteRepository) Create(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	if r.users != nil {
		if _, err := r.users.GetByID(ctx, note.UserID); err != nil {
			return ErrForeignKey
		}
	}
	r.seq++
	now := time.Now()
	note.ID = r.seq
	note.CreatedAt = now
	note.UpdatedAt = now
	note.DeletedAt = gorm.DeletedAt{}
	clone := *note
	clone.Author = nil
	r.notes[note.ID] = &clone
	return nil
}

func (r *MemoryNoteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	note, ok := r.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *note
	r.attachAuthor(ctx, &clone)
	return &clone, nil
}

func (r *MemoryNoteRepository) GetAll(ctx context.Context, includeDeleted bool) ([]models.Note, error) {
	return r.list(ctx, includeDeleted, func(*models.Note) bool { return true })
}

func (r *MemoryNoteRepository) GetAllByUser(ctx context.Context, userID uint, includeDeleted bool) ([]models.Note, error) {
	return r.list(ctx, includeDeleted, func(n *models.Note) bool { return n.UserID == userID })
}

func (r *MemoryNoteRepository) list(ctx context.Context, includeDeleted bool, keep func(*models.Note) bool) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	var notes []models.Note
	for _, note := range r.notes {
		if !includeDeleted && note.DeletedAt.Valid {
			continue
		}
		if !keep(note) {
			continue
		}
		clone := *note
		r.attachAuthor(ctx, &clone)
		notes = append(notes, clone)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (r *MemoryNoteRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	note, ok := r.notes[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := fields["title"]; ok {
		note.Title = v.(string)
	}
	if v, ok := fields["content"]; ok {
		note.Content = v.(string)
	}
	if v, ok := fields["deleted_at"]; ok {
		if v == nil {
			note.DeletedAt = gorm.DeletedAt{}
		} else {
			note.DeletedAt = gorm.DeletedAt{Time: v.(time.Time), Valid: true}
		}
	}
	note.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryNoteRepository) attachAuthor(ctx context.Context, note *models.Note) {
	if r.users == nil {
		return
	}
	if author, err := r.users.GetByID(ctx, note.UserID); err == nil {
		note.Author = author
	}
}
