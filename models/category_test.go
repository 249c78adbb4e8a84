package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureSlug(t *testing.T) {
	category := ServiceCategory{Name: "Travaux Divers"}
	category.EnsureSlug()
	assert.Equal(t, "travaux-divers", category.Slug)

	// An existing slug survives a rename.
	category.Name = "Autre Nom"
	category.EnsureSlug()
	assert.Equal(t, "travaux-divers", category.Slug)

	// No name, no slug.
	empty := ServiceCategory{}
	empty.EnsureSlug()
	assert.Empty(t, empty.Slug)
}
