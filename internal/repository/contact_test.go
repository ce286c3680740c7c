package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/testutil"
)

func createUser(t *testing.T, db *sqlx.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", CreatedAt: time.Now()}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createContact(t *testing.T, repo repository.ContactRepository, owner *model.User, first string) *model.Contact {
	t.Helper()
	contact := &model.Contact{
		FirstName:   first,
		LastName:    "Doe",
		Phone:       "555-0100",
		Email:       "someone@example.com",
		CreatedDate: time.Now(),
		Show:        true,
	}
	if owner != nil {
		contact.OwnerID = &owner.ID
	}
	require.NoError(t, repo.Create(context.Background(), contact))
	return contact
}

func TestContactRepository_CreateAndVisible(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	category := &model.Category{Name: "Friends"}
	require.NoError(t, repository.NewCategoryRepository(db).Create(ctx, category))

	owner := createUser(t, db, "alice")
	contact := createContact(t, repo, owner, "Jane")
	contact.CategoryID = &category.ID
	require.NoError(t, repo.Update(ctx, owner.ID, contact))

	got, err := repo.Visible(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.True(t, got.Show)
	assert.True(t, got.IsOwnedBy(owner.ID))
	require.NotNil(t, got.CategoryName)
	assert.Equal(t, "Friends", *got.CategoryName)
}

func TestContactRepository_HiddenIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "alice")
	contact := createContact(t, repo, owner, "Jane")
	_, err := db.Exec(`UPDATE contacts SET show = $1 WHERE id = $2`, false, contact.ID)
	require.NoError(t, err)

	_, err = repo.Visible(ctx, contact.ID)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	_, err = repo.Owned(ctx, owner.ID, contact.ID)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	contact.FirstName = "Changed"
	err = repo.Update(ctx, owner.ID, contact)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	err = repo.Delete(ctx, owner.ID, contact.ID)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	var firstName string
	require.NoError(t, db.Get(&firstName, `SELECT first_name FROM contacts WHERE id = $1`, contact.ID))
	assert.Equal(t, "Jane", firstName)

	count, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestContactRepository_OwnedRejectsOtherUsers(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	contact := createContact(t, repo, alice, "Jane")

	_, err := repo.Owned(ctx, bob.ID, contact.ID)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	contact.FirstName = "Changed"
	err = repo.Update(ctx, bob.ID, contact)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	err = repo.Delete(ctx, bob.ID, contact.ID)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)

	got, err := repo.Owned(ctx, alice.ID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)

	require.NoError(t, repo.Delete(ctx, alice.ID, contact.ID))
	_, err = repo.Visible(ctx, contact.ID)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)
}

func TestContactRepository_ListNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	var ids []int64
	for i := 1; i <= 25; i++ {
		ids = append(ids, createContact(t, repo, nil, fmt.Sprintf("Person%02d", i)).ID)
	}

	page, err := repo.List(ctx, repository.ContactFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, ids[24], page[0].ID)
	assert.Equal(t, ids[15], page[9].ID)

	last, err := repo.List(ctx, repository.ContactFilter{Offset: 20, Limit: 10})
	require.NoError(t, err)
	require.Len(t, last, 5)
	assert.Equal(t, ids[0], last[4].ID)

	count, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 25, count)
}

func TestContactRepository_Search(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	ann := createContact(t, repo, nil, "Ann")
	joanna := createContact(t, repo, nil, "Joanna")
	bob := createContact(t, repo, nil, "Bob")
	percent := createContact(t, repo, nil, "100%")
	erica := createContact(t, repo, nil, "Érica")
	angela := createContact(t, repo, nil, "Ângela")
	all := []int64{angela.ID, erica.ID, percent.ID, bob.ID, joanna.ID, ann.ID}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"case insensitive", "ANN", []int64{joanna.ID, ann.ID}},
		{"matches last name", "doe", all},
		{"matches phone", "555-01", all},
		{"accented name as stored", "Érica", []int64{erica.ID}},
		{"accented name lower case", "érica", []int64{erica.ID}},
		{"accented name upper case", "ÂNGELA", []int64{angela.ID}},
		{"decomposed accent", "E\u0301rica", []int64{erica.ID}},
		{"unaccented substring", "rica", []int64{erica.ID}},
		{"percent is literal", "%", []int64{percent.ID}},
		{"underscore is literal", "_", nil},
		{"no match across fields", "annadoe", nil},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, err := repo.List(ctx, repository.ContactFilter{Query: tt.query, Limit: 10})
			require.NoError(t, err)

			var got []int64
			for _, c := range contacts {
				got = append(got, c.ID)
			}
			assert.Equal(t, tt.want, got)

			count, err := repo.Count(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), count)
		})
	}
}

func TestContactRepository_UpdateRefreshesSearch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContactRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "alice")
	contact := createContact(t, repo, owner, "Jane")

	contact.FirstName = "Ângela"
	require.NoError(t, repo.Update(ctx, owner.ID, contact))

	count, err := repo.Count(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.Count(ctx, "ângela")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestContactRepository_CategoryDeleteClearsReference(t *testing.T) {
	db := testutil.NewDB(t)
	contacts := repository.NewContactRepository(db)
	categories := repository.NewCategoryRepository(db)
	ctx := context.Background()

	category := &model.Category{Name: "Work"}
	require.NoError(t, categories.Create(ctx, category))

	owner := createUser(t, db, "alice")
	contact := createContact(t, contacts, owner, "Jane")
	contact.CategoryID = &category.ID
	require.NoError(t, contacts.Update(ctx, owner.ID, contact))

	require.NoError(t, categories.Delete(ctx, category.ID))

	got, err := contacts.Visible(ctx, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.CategoryName)
}
