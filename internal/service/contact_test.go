package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/testutil"
	"github.com/templui/contacts/internal/validation"
)

func contactForm(first string) *validation.ContactForm {
	return &validation.ContactForm{
		FirstName: first,
		LastName:  "Doe",
		Phone:     "555-0100",
		Email:     "jane@example.com",
	}
}

func ids(page *model.ContactPage) []int64 {
	var out []int64
	for _, c := range page.Contacts {
		out = append(out, c.ID)
	}
	return out
}

func TestContactService_ListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "alice")

	var created []int64
	for i := 1; i <= 25; i++ {
		c, err := f.contacts.Create(ctx, owner.ID, contactForm(fmt.Sprintf("Person%02d", i)), nil)
		require.NoError(t, err)
		created = append(created, c.ID)
	}

	page, err := f.contacts.List(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, page.NumPages)
	assert.Equal(t, 25, page.Total)
	require.Len(t, page.Contacts, 10)
	assert.Equal(t, created[24], page.Contacts[0].ID)
	assert.Equal(t, created[15], page.Contacts[9].ID)
	assert.False(t, page.HasPrevious())
	assert.True(t, page.HasNext())

	tests := []struct {
		raw    string
		number int
		size   int
	}{
		{"", 1, 10},
		{"abc", 1, 10},
		{"0", 1, 10},
		{"-3", 1, 10},
		{"2", 2, 10},
		{"3", 3, 5},
		{"99", 3, 5},
	}
	for _, tt := range tests {
		t.Run("page "+tt.raw, func(t *testing.T) {
			page, err := f.contacts.List(ctx, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.number, page.Number)
			assert.Len(t, page.Contacts, tt.size)
		})
	}
}

func TestContactService_EmptyListHasOnePage(t *testing.T) {
	f := newFixture(t)

	page, err := f.contacts.List(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.Empty(t, page.Contacts)
}

func TestContactService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "alice")

	ann, err := f.contacts.Create(ctx, owner.ID, contactForm("Ann"), nil)
	require.NoError(t, err)
	_, err = f.contacts.Create(ctx, owner.ID, contactForm("Bob"), nil)
	require.NoError(t, err)

	page, err := f.contacts.Search(ctx, "  aNn ", "")
	require.NoError(t, err)
	assert.Equal(t, "aNn", page.Query)
	assert.Equal(t, []int64{ann.ID}, ids(page))
}

func TestContactService_CreateRejectsABC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "alice")

	_, err := f.contacts.Create(ctx, owner.ID, contactForm("ABC"), nil)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("first_name"))

	page, err := f.contacts.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestContactService_CategoryChoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "alice")

	category, err := f.categories.Create(ctx, "Friends")
	require.NoError(t, err)

	form := contactForm("Jane")
	form.Category = "999"
	_, err = f.contacts.Create(ctx, owner.ID, form, nil)
	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("category"))

	form = contactForm("Jane")
	form.Category = fmt.Sprint(category.ID)
	contact, err := f.contacts.Create(ctx, owner.ID, form, nil)
	require.NoError(t, err)

	got, err := f.contacts.Detail(ctx, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryName)
	assert.Equal(t, "Friends", *got.CategoryName)
}

func TestContactService_OwnershipIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	contact, err := f.contacts.Create(ctx, alice.ID, contactForm("Jane"), nil)
	require.NoError(t, err)

	_, err = f.contacts.Owned(ctx, bob.ID, contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = f.contacts.Update(ctx, bob.ID, contact.ID, contactForm("Mallory"), nil)
	assert.ErrorIs(t, err, ErrContactNotFound)

	err = f.contacts.Delete(ctx, bob.ID, contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = f.contacts.Detail(ctx, contact.ID+1)
	assert.ErrorIs(t, err, ErrContactNotFound)

	got, err := f.contacts.Detail(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
}

func TestContactService_PictureLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "alice")

	contact, err := f.contacts.Create(ctx, owner.ID, contactForm("Jane"),
		testutil.FileHeader(t, "picture", "jane.png", testutil.PNG))
	require.NoError(t, err)
	require.True(t, contact.HasPicture())
	assert.Regexp(t, `^pictures/\d{4}/\d{2}/[0-9a-f-]{36}\.png$`, contact.Picture)
	assert.Equal(t, "/media/"+contact.Picture, contact.PictureURL)

	first := filepath.Join(f.mediaDir, filepath.FromSlash(contact.Picture))
	assert.FileExists(t, first)

	updated, err := f.contacts.Update(ctx, owner.ID, contact.ID, contactForm("Jane"),
		testutil.FileHeader(t, "picture", "jane2.png", testutil.PNG))
	require.NoError(t, err)
	assert.NotEqual(t, contact.Picture, updated.Picture)
	assert.NoFileExists(t, first)

	kept, err := f.contacts.Update(ctx, owner.ID, contact.ID, contactForm("Janet"), nil)
	require.NoError(t, err)
	assert.Equal(t, updated.Picture, kept.Picture)

	second := filepath.Join(f.mediaDir, filepath.FromSlash(updated.Picture))
	require.NoError(t, f.contacts.Delete(ctx, owner.ID, contact.ID))
	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))

	_, err = f.contacts.Detail(ctx, contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_RejectsNonImagePicture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "alice")

	_, err := f.contacts.Create(ctx, owner.ID, contactForm("Jane"),
		testutil.FileHeader(t, "picture", "notes.png", []byte("just text")))

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("picture"))
}
