package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "notedesk/internal/errors"
	"notedesk/internal/model"
	"notedesk/internal/repository"
)

// NoteService handles note operations.
type NoteService interface {
	Create(ctx context.Context, ownerEmail, title, desc string, categoryID *uuid.UUID) (*model.Note, error)
	ListByCategory(ctx context.Context, ownerEmail string, categoryID uuid.UUID) ([]model.Note, error)
	Get(ctx context.Context, ownerEmail string, id uuid.UUID) (*model.Note, error)
	Update(ctx context.Context, ownerEmail string, id uuid.UUID, title, desc string, categoryID *uuid.UUID) (*model.Note, error)
	PurgeAll(ctx context.Context) (int64, error)
}

type noteService struct {
	noteRepo     repository.NoteRepository
	categoryRepo repository.CategoryRepository
}

// NewNoteService creates a new note service.
func NewNoteService(noteRepo repository.NoteRepository, categoryRepo repository.CategoryRepository) NoteService {
	return &noteService{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
	}
}

// checkCategory verifies a referenced category exists and belongs to the owner.
func (s *noteService) checkCategory(ctx context.Context, ownerEmail string, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID, ownerEmail); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}

// Create stores a new note, optionally filed under an owned category.
func (s *noteService) Create(ctx context.Context, ownerEmail, title, desc string, categoryID *uuid.UUID) (*model.Note, error) {
	if err := s.checkCategory(ctx, ownerEmail, categoryID); err != nil {
		return nil, err
	}

	note := &model.Note{
		NoteTitle:  title,
		NoteDesc:   desc,
		CategoryID: categoryID,
		UserEmail:  ownerEmail,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

// ListByCategory returns the notes filed under one owned category.
func (s *noteService) ListByCategory(ctx context.Context, ownerEmail string, categoryID uuid.UUID) ([]model.Note, error) {
	if err := s.checkCategory(ctx, ownerEmail, &categoryID); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByCategory(ctx, categoryID, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Get returns a single owned note.
func (s *noteService) Get(ctx context.Context, ownerEmail string, id uuid.UUID) (*model.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id, ownerEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return note, nil
}

// Update replaces the note's title and description and optionally moves it
// to another owned category. The persisted row is returned.
func (s *noteService) Update(ctx context.Context, ownerEmail string, id uuid.UUID, title, desc string, categoryID *uuid.UUID) (*model.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id, ownerEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	if err := s.checkCategory(ctx, ownerEmail, categoryID); err != nil {
		return nil, err
	}

	note.NoteTitle = title
	note.NoteDesc = desc
	if categoryID != nil {
		note.CategoryID = categoryID
	}
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	return note, nil
}

// PurgeAll deletes every note. Admin-only maintenance operation.
func (s *noteService) PurgeAll(ctx context.Context) (int64, error) {
	return s.noteRepo.DeleteAll(ctx)
}
