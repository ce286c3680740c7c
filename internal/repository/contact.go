package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/templui/contacts/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrContactNotFound = errors.New("contact not found")
)

// Positional $n placeholders work for both pgx and modernc sqlite.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ContactFilter selects a window of visible contacts. An empty Query lists all of them.
type ContactFilter struct {
	Query  string
	Offset int
	Limit  int
}

type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	// Visible returns a contact with show = true.
	Visible(ctx context.Context, id int64) (*model.Contact, error)
	// Owned returns a visible contact owned by ownerID.
	Owned(ctx context.Context, ownerID, id int64) (*model.Contact, error)
	Count(ctx context.Context, query string) (int, error)
	List(ctx context.Context, filter ContactFilter) ([]*model.Contact, error)
	Update(ctx context.Context, ownerID int64, contact *model.Contact) error
	Delete(ctx context.Context, ownerID, id int64) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query, args, err := psql.Insert("contacts").
		Columns("first_name", "last_name", "phone", "email", "created_date",
			"description", "show", "picture", "category_id", "owner_id", "search").
		Values(contact.FirstName, contact.LastName, contact.Phone, contact.Email, contact.CreatedDate,
			contact.Description, contact.Show, contact.Picture, contact.CategoryID, contact.OwnerID,
			searchText(contact)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRowxContext(ctx, query, args...).Scan(&contact.ID)
}

func (r *contactRepository) Visible(ctx context.Context, id int64) (*model.Contact, error) {
	return r.get(ctx, sq.Eq{"contacts.id": id, "contacts.show": true})
}

func (r *contactRepository) Owned(ctx context.Context, ownerID, id int64) (*model.Contact, error) {
	return r.get(ctx, sq.Eq{"contacts.id": id, "contacts.show": true, "contacts.owner_id": ownerID})
}

func (r *contactRepository) get(ctx context.Context, where sq.Sqlizer) (*model.Contact, error) {
	query, args, err := selectContacts().Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	contact := &model.Contact{}
	err = r.db.GetContext(ctx, contact, query, args...)
	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) Count(ctx context.Context, query string) (int, error) {
	builder := psql.Select("COUNT(*)").From("contacts").Where(sq.Eq{"contacts.show": true})
	if query != "" {
		builder = builder.Where(matching(query))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRowxContext(ctx, sqlStr, args...).Scan(&count)
	return count, err
}

func (r *contactRepository) List(ctx context.Context, filter ContactFilter) ([]*model.Contact, error) {
	builder := selectContacts().
		Where(sq.Eq{"contacts.show": true}).
		OrderBy("contacts.id DESC")
	if filter.Query != "" {
		builder = builder.Where(matching(filter.Query))
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var contacts []*model.Contact
	err = r.db.SelectContext(ctx, &contacts, query, args...)
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

// Update writes every mutable field. created_date and owner_id never change.
func (r *contactRepository) Update(ctx context.Context, ownerID int64, contact *model.Contact) error {
	query, args, err := psql.Update("contacts").
		SetMap(map[string]any{
			"first_name":  contact.FirstName,
			"last_name":   contact.LastName,
			"phone":       contact.Phone,
			"email":       contact.Email,
			"description": contact.Description,
			"picture":     contact.Picture,
			"category_id": contact.CategoryID,
			"search":      searchText(contact),
		}).
		Where(sq.Eq{"id": contact.ID, "show": true, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return err
	}

	return r.execOne(ctx, query, args...)
}

func (r *contactRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query, args, err := psql.Delete("contacts").
		Where(sq.Eq{"id": id, "show": true, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return err
	}

	return r.execOne(ctx, query, args...)
}

func (r *contactRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrContactNotFound
	}

	return nil
}

var contactColumns = []string{
	"contacts.id", "contacts.first_name", "contacts.last_name", "contacts.phone",
	"contacts.email", "contacts.created_date", "contacts.description", "contacts.show",
	"contacts.picture", "contacts.category_id", "contacts.owner_id",
	"categories.name AS category_name",
}

func selectContacts() sq.SelectBuilder {
	return psql.Select(contactColumns...).
		From("contacts").
		LeftJoin("categories ON categories.id = contacts.category_id")
}

// matching is a case-insensitive substring match on the searchable columns.
// Both sides are folded in Go, so SQLite and PostgreSQL agree on non-ASCII text.
func matching(query string) sq.Sqlizer {
	needle := "%" + escapeLike(fold(query)) + "%"
	return sq.Expr(`contacts.search LIKE ? ESCAPE '\'`, needle)
}

// searchSeparator joins the folded fields so a needle never spans two of them.
const searchSeparator = "\x1f"

// searchText is the folded copy of first name, last name, phone and email kept
// in contacts.search.
func searchText(c *model.Contact) string {
	return fold(strings.Join([]string{c.FirstName, c.LastName, c.Phone, c.Email}, searchSeparator))
}

// fold composes and case-folds s, so "E\u0301rica" and "ÉRICA" both become "érica".
// A Caser is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, searchSeparator, "")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
