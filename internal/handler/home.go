package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/templui/contacts/internal/ui"
	"github.com/templui/contacts/internal/validation"
)

// NotFoundPage is the catch-all for unknown paths.
func NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, ui.NotFoundPage())
}

// pathID parses the {id} wildcard. ok is false for anything but a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// asValidation extracts field errors from a service error.
func asValidation(err error) (validation.Errors, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// uploadedFile returns the header of an optional file field, nil when none was sent.
func uploadedFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = file.Close()
	return header, nil
}
