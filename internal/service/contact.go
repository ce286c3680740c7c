package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/pagination"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/validation"
)

// ErrContactNotFound covers missing, hidden and not-owned contacts alike.
var ErrContactNotFound = errors.New("contact not found")

type ContactService struct {
	contactRepository repository.ContactRepository
	categoryService   *CategoryService
	pictureService    *PictureService
	now               func() time.Time
}

func NewContactService(
	contactRepository repository.ContactRepository,
	categoryService *CategoryService,
	pictureService *PictureService,
) *ContactService {
	return &ContactService{
		contactRepository: contactRepository,
		categoryService:   categoryService,
		pictureService:    pictureService,
		now:               time.Now,
	}
}

// List returns one page of visible contacts, newest first.
func (s *ContactService) List(ctx context.Context, rawPage string) (*model.ContactPage, error) {
	return s.page(ctx, "", rawPage)
}

// Search pages through visible contacts whose first name, last name, phone or email
// contains query, ignoring case. The query is trimmed; an empty query lists everything.
func (s *ContactService) Search(ctx context.Context, query, rawPage string) (*model.ContactPage, error) {
	return s.page(ctx, strings.TrimSpace(query), rawPage)
}

func (s *ContactService) page(ctx context.Context, query, rawPage string) (*model.ContactPage, error) {
	total, err := s.contactRepository.Count(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	page := pagination.New(total, pagination.DefaultPerPage, rawPage)

	contacts, err := s.contactRepository.List(ctx, repository.ContactFilter{
		Query:  query,
		Offset: page.Offset(),
		Limit:  page.Limit(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	for _, contact := range contacts {
		s.hydrate(ctx, contact)
	}

	return &model.ContactPage{
		Contacts: contacts,
		Number:   page.Number,
		NumPages: page.NumPages,
		Total:    page.Total,
		Query:    query,
	}, nil
}

// Detail returns a visible contact.
func (s *ContactService) Detail(ctx context.Context, id int64) (*model.Contact, error) {
	contact, err := s.contactRepository.Visible(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	s.hydrate(ctx, contact)
	return contact, nil
}

// Owned returns a visible contact owned by ownerID.
func (s *ContactService) Owned(ctx context.Context, ownerID, id int64) (*model.Contact, error) {
	contact, err := s.contactRepository.Owned(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err)
	}
	s.hydrate(ctx, contact)
	return contact, nil
}

// Create stores a new visible contact owned by ownerID. picture may be nil.
func (s *ContactService) Create(ctx context.Context, ownerID int64, form *validation.ContactForm, picture *multipart.FileHeader) (*model.Contact, error) {
	categoryID, contentType, err := s.validate(ctx, form, picture)
	if err != nil {
		return nil, err
	}

	contact := &model.Contact{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Phone:       form.Phone,
		Email:       form.Email,
		Description: form.Description,
		CreatedDate: s.now(),
		Show:        true,
		CategoryID:  categoryID,
		OwnerID:     &ownerID,
	}

	if picture != nil {
		contact.Picture, err = s.pictureService.Upload(ctx, picture, contentType)
		if err != nil {
			return nil, err
		}
	}

	err = s.contactRepository.Create(ctx, contact)
	if err != nil {
		s.pictureService.Remove(ctx, contact.Picture)
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	slog.Info("contact created", "contact_id", contact.ID, "user_id", ownerID)
	s.hydrate(ctx, contact)
	return contact, nil
}

// Update rewrites an owned contact. A new picture replaces the stored one.
func (s *ContactService) Update(ctx context.Context, ownerID, id int64, form *validation.ContactForm, picture *multipart.FileHeader) (*model.Contact, error) {
	current, err := s.contactRepository.Owned(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err)
	}

	categoryID, contentType, err := s.validate(ctx, form, picture)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName
	updated.Phone = form.Phone
	updated.Email = form.Email
	updated.Description = form.Description
	updated.CategoryID = categoryID

	if picture != nil {
		updated.Picture, err = s.pictureService.Upload(ctx, picture, contentType)
		if err != nil {
			return nil, err
		}
	}

	err = s.contactRepository.Update(ctx, ownerID, &updated)
	if err != nil {
		if updated.Picture != current.Picture {
			s.pictureService.Remove(ctx, updated.Picture)
		}
		return nil, notFound(err)
	}

	if updated.Picture != current.Picture {
		s.pictureService.Remove(ctx, current.Picture)
	}

	slog.Info("contact updated", "contact_id", id, "user_id", ownerID)
	s.hydrate(ctx, &updated)
	return &updated, nil
}

// Delete hard-deletes an owned contact together with its picture.
func (s *ContactService) Delete(ctx context.Context, ownerID, id int64) error {
	contact, err := s.contactRepository.Owned(ctx, ownerID, id)
	if err != nil {
		return notFound(err)
	}

	err = s.contactRepository.Delete(ctx, ownerID, id)
	if err != nil {
		return notFound(err)
	}

	s.pictureService.Remove(ctx, contact.Picture)

	slog.Info("contact deleted", "contact_id", id, "user_id", ownerID)
	return nil
}

// validate runs the form rules plus the checks that need the database or the upload.
func (s *ContactService) validate(ctx context.Context, form *validation.ContactForm, picture *multipart.FileHeader) (*int64, string, error) {
	errs := form.Validate()

	categoryID, ok := form.CategoryID()
	if ok && categoryID != nil {
		exists, err := s.categoryService.exists(ctx, *categoryID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			errs.Add("category", validation.InvalidChoice)
		}
	}

	var contentType string
	if picture != nil {
		var err error
		contentType, err = s.pictureService.Validate(picture)
		if err != nil {
			errs.Add("picture", err.Error())
		}
	}

	if errs.Any() {
		return nil, "", errs
	}

	return categoryID, contentType, nil
}

func (s *ContactService) hydrate(ctx context.Context, contact *model.Contact) {
	contact.PictureURL = s.pictureService.URL(ctx, contact.Picture)
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrContactNotFound) {
		return ErrContactNotFound
	}
	return err
}
