package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"notedesk/internal/cache"
	apperrors "notedesk/internal/errors"
	"notedesk/internal/model"
	"notedesk/internal/repository"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryService handles category operations for one owner at a time.
type CategoryService interface {
	List(ctx context.Context, ownerEmail string) ([]model.Category, error)
	Create(ctx context.Context, ownerEmail, name string) (*model.Category, error)
	Update(ctx context.Context, ownerEmail string, id uuid.UUID, name string) (*model.Category, error)
	Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	noteRepo     repository.NoteRepository
	cache        *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, noteRepo repository.NoteRepository, cache *cache.Client) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		noteRepo:     noteRepo,
		cache:        cache,
	}
}

func (s *categoryService) cacheKey(ownerEmail string) string {
	return fmt.Sprintf("categories:%s", ownerEmail)
}

// List returns all categories owned by the caller, cached per owner.
func (s *categoryService) List(ctx context.Context, ownerEmail string) ([]model.Category, error) {
	var cached []model.Category
	if hit, _ := s.cache.GetJSON(ctx, s.cacheKey(ownerEmail), &cached); hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(ownerEmail), categories, categoryCacheTTL)

	return categories, nil
}

// Create adds a category, rejecting duplicate names for the same owner.
func (s *categoryService) Create(ctx context.Context, ownerEmail, name string) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByName(ctx, name, ownerEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrCategoryNameTaken
	}

	category := &model.Category{
		Name:      name,
		UserEmail: ownerEmail,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerEmail))

	return category, nil
}

// Update renames a category. The new name must not collide with a sibling.
func (s *categoryService) Update(ctx context.Context, ownerEmail string, id uuid.UUID, name string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id, ownerEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	conflicting, err := s.categoryRepo.FindByName(ctx, name, ownerEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if conflicting != nil && conflicting.ID != category.ID {
		return nil, apperrors.ErrCategoryNameTaken
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerEmail))

	return category, nil
}

// Delete removes a category unless notes still reference it.
func (s *categoryService) Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id, ownerEmail); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	count, err := s.noteRepo.CountByCategory(ctx, id, ownerEmail)
	if err != nil {
		return fmt.Errorf("count notes: %w", err)
	}
	if count > 0 {
		return &apperrors.CategoryInUseError{Count: count}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerEmail))

	return nil
}
