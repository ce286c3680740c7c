package model

import (
	"strings"
	"time"
)

type Contact struct {
	ID          int64     `db:"id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Phone       string    `db:"phone"`
	Email       string    `db:"email"`
	CreatedDate time.Time `db:"created_date"`
	Description string    `db:"description"`
	Show        bool      `db:"show"`
	Picture     string    `db:"picture"` // Storage key, empty when no picture was uploaded
	CategoryID  *int64    `db:"category_id"`
	OwnerID     *int64    `db:"owner_id"`

	// Joined fields (read-only)
	CategoryName *string `db:"category_name"`

	// Computed fields (not in database)
	PictureURL string `db:"-"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Contact) HasPicture() bool {
	return c.Picture != ""
}

// IsOwnedBy reports whether userID owns the contact. Ownerless contacts are owned by nobody.
func (c *Contact) IsOwnedBy(userID int64) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

// ContactPage is one page of a contact listing or search.
type ContactPage struct {
	Contacts []*Contact
	Number   int
	NumPages int
	Total    int
	Query    string // Search term, empty for the plain listing
}

func (p *ContactPage) HasPrevious() bool {
	return p.Number > 1
}

func (p *ContactPage) HasNext() bool {
	return p.Number < p.NumPages
}
