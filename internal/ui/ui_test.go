package ui

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/ctxkeys"
	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/validation"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestContactListPage_EscapesAndPaginates(t *testing.T) {
	page := &model.ContactPage{
		Contacts: []*model.Contact{{ID: 7, FirstName: "<script>", LastName: "Doe"}},
		Number:   2,
		NumPages: 3,
		Query:    "a&b",
	}

	html := renderString(t, context.Background(), ContactListPage(page, ""))

	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `href="/contact/7/detail/"`)
	assert.Contains(t, html, "Page 2 of 3")
	assert.Contains(t, html, `/search/?page=1&amp;q=a%26b`)
	assert.Contains(t, html, `/search/?page=3&amp;q=a%26b`)
}

func TestContactListPage_Empty(t *testing.T) {
	page := &model.ContactPage{Number: 1, NumPages: 1}
	html := renderString(t, context.Background(), ContactListPage(page, "Logged in."))

	assert.Contains(t, html, "No contacts found.")
	assert.Contains(t, html, "Logged in.")
	assert.NotContains(t, html, "next")
}

func TestContactDetailPage_DeleteConfirmation(t *testing.T) {
	contact := &model.Contact{ID: 3, FirstName: "Jane", LastName: "Doe", CreatedDate: time.Now()}
	ctx := ctxkeys.WithCSRFToken(context.Background(), "tok")

	anonymous := renderString(t, ctx, ContactDetailPage(contact, false, ""))
	assert.Contains(t, anonymous, "<title>Jane Doe - Contacts</title>")
	assert.NotContains(t, anonymous, "/contact/3/delete/")

	first := renderString(t, ctx, ContactDetailPage(contact, true, ""))
	assert.Contains(t, first, `action="/contact/3/delete/"`)
	assert.Contains(t, first, `name="csrf_token" value="tok"`)
	assert.NotContains(t, first, `name="confirmation"`)

	confirm := renderString(t, ctx, ContactDetailPage(contact, true, "no"))
	assert.Contains(t, confirm, `name="confirmation" value="yes"`)
}

func TestContactDetailPage_SanitizesPictureURL(t *testing.T) {
	contact := &model.Contact{
		ID:          3,
		FirstName:   "Jane",
		LastName:    "Doe",
		Picture:     "contacts/jane.png",
		PictureURL:  "javascript:alert(1)",
		CreatedDate: time.Now(),
	}

	html := renderString(t, context.Background(), ContactDetailPage(contact, false, ""))
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, `src="about:invalid#TemplFailedSanitizationURL"`)

	contact.PictureURL = "/media/contacts/jane.png"
	html = renderString(t, context.Background(), ContactDetailPage(contact, false, ""))
	assert.Contains(t, html, `src="/media/contacts/jane.png"`)
}

func TestContactFormPage_ShowsErrorsAndSelection(t *testing.T) {
	errs := validation.Errors{}
	errs.Add("first_name", "ABC is not an acceptable first name")

	html := renderString(t, context.Background(), ContactFormPage(ContactFormProps{
		Title:      "Create contact",
		Action:     "/contact/create/",
		Form:       validation.ContactForm{FirstName: "ABC", Category: "2"},
		Errors:     errs,
		Categories: []*model.Category{{ID: 1, Name: "Work"}, {ID: 2, Name: "Friends"}},
	}))

	assert.Contains(t, html, "ABC is not an acceptable first name")
	assert.Contains(t, html, `value="ABC"`)
	assert.Contains(t, html, `<option value="2" selected>Friends</option>`)
	assert.Contains(t, html, `enctype="multipart/form-data"`)
}

func TestLayout_AccountLinks(t *testing.T) {
	ctx := ctxkeys.WithUser(context.Background(), &model.User{ID: 1, Username: "alice"})
	html := renderString(t, ctx, NotFoundPage())
	assert.Contains(t, html, `action="/user/logout/"`)
	assert.Contains(t, html, ">alice</a>")

	html = renderString(t, ctxkeys.WithURLPath(context.Background(), "/user/login/"), NotFoundPage())
	assert.Contains(t, html, `href="/user/login/" aria-current="page"`)
	assert.Contains(t, html, `href="/user/create/"`)
}

func TestPasswordFieldsNeverEchoValues(t *testing.T) {
	form := validation.RegisterForm{Username: "alice", Password1: "secret-value-1"}
	html := renderString(t, context.Background(), RegisterPage(form, nil))
	assert.NotContains(t, html, "secret-value-1")
}

func TestRenderStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderStatus(rec, httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, NotFoundPage())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestButtonClassMerges(t *testing.T) {
	assert.Contains(t, buttonClass(ButtonPrimary, "px-3"), "px-3")
	assert.NotContains(t, buttonClass(ButtonPrimary, "px-3"), "px-4")
}
