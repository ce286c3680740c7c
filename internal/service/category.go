package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/validation"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService struct {
	categoryRepository repository.CategoryRepository
}

func NewCategoryService(categoryRepository repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepository: categoryRepository}
}

func (s *CategoryService) Categories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepository.Categories(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	err := validation.ValidateLength(name, 1, validation.MaxContactFieldLength)
	if err != nil {
		return nil, fmt.Errorf("category name %w", err)
	}

	category := &model.Category{Name: name}
	err = s.categoryRepository.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// Delete removes a category. Contacts in it become uncategorised.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	err := s.categoryRepository.Delete(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// exists reports whether id names a category.
func (s *CategoryService) exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.categoryRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return false, nil
	}
	return err == nil, err
}
