package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductRefDisplayName(t *testing.T) {
	assert.Equal(t, "Café de Altura", NameRef("Café de Altura").DisplayName())
	assert.Equal(t, "Café Orgánico", FullRef(&Product{Name: "Café Orgánico"}).DisplayName())
	assert.Equal(t, "Producto", ProductRef{}.DisplayName())
	assert.Equal(t, "Producto", FullRef(&Product{}).DisplayName())
}

func TestHasDraft(t *testing.T) {
	var nilSession *UserSession
	assert.False(t, nilSession.HasDraft())
	assert.False(t, (&UserSession{}).HasDraft())
	assert.False(t, (&UserSession{Draft: &DraftOrder{}}).HasDraft())
	assert.True(t, (&UserSession{Draft: &DraftOrder{Product: &Product{Name: "Café"}}}).HasDraft())
}
