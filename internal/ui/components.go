package ui

import (
	"net/url"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/templui/contacts/internal/model"
)

type ButtonVariant string

const (
	ButtonPrimary     ButtonVariant = "primary"
	ButtonSecondary   ButtonVariant = "secondary"
	ButtonDestructive ButtonVariant = "destructive"
)

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:     "bg-primary text-white",
	ButtonSecondary:   "bg-muted text-fg",
	ButtonDestructive: "bg-danger text-white",
}

// buttonClass merges the base button classes with a variant and overrides; later classes win.
func buttonClass(variant ButtonVariant, extra ...string) string {
	return twmerge.Merge(append([]string{"btn px-4 py-2 rounded", buttonVariants[variant]}, extra...)...)
}

func inputClass(invalid bool) string {
	if invalid {
		return twmerge.Merge("input w-full border rounded px-3 py-2", "border-danger")
	}
	return "input w-full border rounded px-3 py-2"
}

type fieldProps struct {
	Name         string
	Label        string
	Type         string
	Value        string
	Errors       []string
	Autocomplete string
	MaxLength    int
}

func (p fieldProps) id() string {
	return "id_" + p.Name
}

func (p fieldProps) inputType() string {
	if p.Type == "" {
		return "text"
	}
	return p.Type
}

func (p fieldProps) invalid() bool {
	return len(p.Errors) > 0
}

// attrs are the optional input attributes. Password inputs never carry a value.
func (p fieldProps) attrs() templ.Attributes {
	attrs := templ.Attributes{}
	if p.inputType() != "password" {
		attrs["value"] = p.Value
	}
	if p.Autocomplete != "" {
		attrs["autocomplete"] = p.Autocomplete
	}
	if p.MaxLength > 0 {
		attrs["maxlength"] = strconv.Itoa(p.MaxLength)
	}
	return attrs
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

func noticeClass(kind NoticeKind) string {
	return twmerge.Merge("notice rounded px-4 py-2", "notice-"+string(kind))
}

func noticeRole(kind NoticeKind) string {
	if kind == NoticeError {
		return "alert"
	}
	return "status"
}

// pageLink points at page number of the listing under basePath, keeping the search query.
func pageLink(page *model.ContactPage, basePath string, number int) string {
	q := url.Values{}
	if page.Query != "" {
		q.Set("q", page.Query)
	}
	q.Set("page", strconv.Itoa(number))
	return basePath + "?" + q.Encode()
}
