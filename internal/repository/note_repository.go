package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notedesk/internal/model"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id uuid.UUID, ownerEmail string) (*model.Note, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, ownerEmail string) ([]model.Note, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID, ownerEmail string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID, ownerEmail string) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, ownerEmail).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, ownerEmail string) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND user_email = ?", categoryID, ownerEmail).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID, ownerEmail string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("category_id = ? AND user_email = ?", categoryID, ownerEmail).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noteRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Note{})
	return res.RowsAffected, res.Error
}
