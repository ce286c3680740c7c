package ui

import (
	"strconv"

	"github.com/templui/contacts/internal/model"
	"github.com/templui/contacts/internal/validation"
)

const createdFormat = "02/01/2006 15:04"

func contactPath(id int64, action string) string {
	return "/contact/" + strconv.FormatInt(id, 10) + "/" + action + "/"
}

// listTitle and listPath switch the listing to search results when page.Query is set.
func listTitle(page *model.ContactPage) string {
	if page.Query != "" {
		return "Search"
	}
	return ""
}

func listPath(page *model.ContactPage) string {
	if page.Query != "" {
		return "/search/"
	}
	return "/"
}

func categoryValue(c *model.Category) string {
	return strconv.FormatInt(c.ID, 10)
}

// ContactFormProps feeds the shared create/update form.
type ContactFormProps struct {
	Title      string
	Action     string
	Form       validation.ContactForm
	Errors     validation.Errors
	Categories []*model.Category
	Contact    *model.Contact // nil when creating
}

// ContactFormFrom prefills the form with a stored contact.
func ContactFormFrom(c *model.Contact) validation.ContactForm {
	form := validation.ContactForm{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
	}
	if c.CategoryID != nil {
		form.Category = strconv.FormatInt(*c.CategoryID, 10)
	}
	return form
}
