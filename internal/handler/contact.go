package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/contacts/internal/ctxkeys"
	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/service"
	"github.com/templui/contacts/internal/ui"
	"github.com/templui/contacts/internal/validation"
)

type ContactHandler struct {
	contactService  *service.ContactService
	categoryService *service.CategoryService
}

func NewContactHandler(contactService *service.ContactService, categoryService *service.CategoryService) *ContactHandler {
	return &ContactHandler{
		contactService:  contactService,
		categoryService: categoryService,
	}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := h.contactService.List(r.Context(), query.Get("page"))
	if err != nil {
		slog.Error("failed to list contacts", "error", err)
		http.Error(w, "Failed to load contacts", http.StatusInternalServerError)
		return
	}

	notice := ""
	if query.Get("welcome") == "1" {
		notice = "Logged in."
	}

	ui.Render(w, r, ui.ContactListPage(page, notice))
}

func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := strings.TrimSpace(query.Get("q"))
	if q == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	page, err := h.contactService.Search(r.Context(), q, query.Get("page"))
	if err != nil {
		slog.Error("failed to search contacts", "error", err, "query", q)
		http.Error(w, "Failed to search contacts", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, ui.ContactListPage(page, ""))
}

func (h *ContactHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}

	contact, err := h.contactService.Detail(r.Context(), id)
	if errors.Is(err, service.ErrContactNotFound) {
		NotFoundPage(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get contact", "error", err, "contact_id", id)
		http.Error(w, "Failed to load contact", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, ui.ContactDetailPage(contact, isOwner(r, contact), ""))
}

func (h *ContactHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, ui.ContactFormProps{
		Title:  "Create contact",
		Action: "/contact/create/",
	})
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	picture, err := uploadedFile(r, "picture")
	if err != nil {
		slog.Warn("failed to read picture upload", "error", err, "user_id", user.ID)
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	form := contactFormFromRequest(r)
	contact, err := h.contactService.Create(r.Context(), user.ID, &form, picture)
	if errs, ok := asValidation(err); ok {
		h.renderForm(w, r, ui.ContactFormProps{
			Title:  "Create contact",
			Action: "/contact/create/",
			Form:   form,
			Errors: errs,
		})
		return
	}
	if err != nil {
		slog.Error("failed to create contact", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to create contact", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/contact/"+formatID(contact.ID)+"/update/", http.StatusSeeOther)
}

func (h *ContactHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	id, ok := pathID(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}

	contact, err := h.contactService.Owned(r.Context(), user.ID, id)
	if errors.Is(err, service.ErrContactNotFound) {
		NotFoundPage(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get contact", "error", err, "contact_id", id, "user_id", user.ID)
		http.Error(w, "Failed to load contact", http.StatusInternalServerError)
		return
	}

	h.renderForm(w, r, ui.ContactFormProps{
		Title:   "Update contact",
		Action:  r.URL.Path,
		Form:    ui.ContactFormFrom(contact),
		Contact: contact,
	})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	id, ok := pathID(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}

	picture, err := uploadedFile(r, "picture")
	if err != nil {
		slog.Warn("failed to read picture upload", "error", err, "user_id", user.ID)
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	form := contactFormFromRequest(r)
	_, err = h.contactService.Update(r.Context(), user.ID, id, &form, picture)
	if errs, ok := asValidation(err); ok {
		contact, lookupErr := h.contactService.Owned(r.Context(), user.ID, id)
		if lookupErr != nil {
			contact = nil
		}
		h.renderForm(w, r, ui.ContactFormProps{
			Title:   "Update contact",
			Action:  r.URL.Path,
			Form:    form,
			Errors:  errs,
			Contact: contact,
		})
		return
	}
	if errors.Is(err, service.ErrContactNotFound) {
		NotFoundPage(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to update contact", "error", err, "contact_id", id, "user_id", user.ID)
		http.Error(w, "Failed to update contact", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

// Delete needs confirmation=yes; anything else re-renders the detail page asking for it.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	id, ok := pathID(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}

	confirmation := r.PostFormValue("confirmation")
	if confirmation == "" {
		confirmation = "no"
	}

	if confirmation != "yes" {
		contact, err := h.contactService.Owned(r.Context(), user.ID, id)
		if errors.Is(err, service.ErrContactNotFound) {
			NotFoundPage(w, r)
			return
		}
		if err != nil {
			slog.Error("failed to get contact", "error", err, "contact_id", id, "user_id", user.ID)
			http.Error(w, "Failed to load contact", http.StatusInternalServerError)
			return
		}
		ui.Render(w, r, ui.ContactDetailPage(contact, true, confirmation))
		return
	}

	err := h.contactService.Delete(r.Context(), user.ID, id)
	if errors.Is(err, service.ErrContactNotFound) {
		NotFoundPage(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to delete contact", "error", err, "contact_id", id, "user_id", user.ID)
		http.Error(w, "Failed to delete contact", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ContactHandler) renderForm(w http.ResponseWriter, r *http.Request, props ui.ContactFormProps) {
	categories, err := h.categoryService.Categories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}
	props.Categories = categories
	ui.Render(w, r, ui.ContactFormPage(props))
}

func contactFormFromRequest(r *http.Request) validation.ContactForm {
	return validation.ContactForm{
		FirstName:   r.PostFormValue("first_name"),
		LastName:    r.PostFormValue("last_name"),
		Phone:       r.PostFormValue("phone"),
		Email:       r.PostFormValue("email"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
	}
}

func isOwner(r *http.Request, contact *model.Contact) bool {
	user := ctxkeys.User(r.Context())
	return user != nil && contact.IsOwnedBy(user.ID)
}
