package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/contacts/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	ByID(ctx context.Context, id int64) (*model.Category, error)
	Categories(ctx context.Context) ([]*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	return r.db.QueryRowxContext(ctx, query, category.Name).Scan(&category.ID)
}

func (r *categoryRepository) ByID(ctx context.Context, id int64) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1`

	err := r.db.GetContext(ctx, category, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) Categories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories ORDER BY LOWER(name) ASC, id ASC`

	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Delete removes the category. Contacts referencing it have their category cleared.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
