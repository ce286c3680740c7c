package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContact_IsOwnedBy(t *testing.T) {
	owner := int64(7)

	assert.True(t, (&Contact{OwnerID: &owner}).IsOwnedBy(7))
	assert.False(t, (&Contact{OwnerID: &owner}).IsOwnedBy(8))
	assert.False(t, (&Contact{}).IsOwnedBy(0), "ownerless contacts belong to nobody")
}

func TestContact_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&Contact{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&Contact{FirstName: "Ada"}).FullName())
}

func TestContactPage_Navigation(t *testing.T) {
	first := &ContactPage{Number: 1, NumPages: 3}
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())

	last := &ContactPage{Number: 3, NumPages: 3}
	assert.True(t, last.HasPrevious())
	assert.False(t, last.HasNext())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Grace Hopper", (&User{Username: "grace", FirstName: "Grace", LastName: "Hopper"}).DisplayName())
	assert.Equal(t, "grace", (&User{Username: "grace"}).DisplayName())
}
