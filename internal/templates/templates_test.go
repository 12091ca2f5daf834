package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	list := Catalog()
	require.Len(t, list, 2)

	assert.Equal(t, "modern", list[0].ID)
	assert.Equal(t, "Modern Professional", list[0].Name)
	assert.True(t, list[0].Popular)
	assert.Equal(t, []string{"#667eea", "#764ba2", "#f093fb", "#f5576c"}, list[0].Colors)

	assert.Equal(t, "classic", list[1].ID)
	assert.Equal(t, "Classic Elegant", list[1].Name)
	assert.False(t, list[1].Popular)
	assert.Equal(t, "classic", list[1].StyleTag)

	// копия не влияет на каталог
	list[0].Colors[0] = "#000000"
	assert.Equal(t, "#667eea", Catalog()[0].Colors[0])
}

func TestStyleOf(t *testing.T) {
	assert.Equal(t, StyleClassic, StyleOf("classic"))
	assert.Equal(t, StyleClassic, StyleOf(" Classic "))
	assert.Equal(t, StyleModern, StyleOf("modern"))
	assert.Equal(t, StyleModern, StyleOf(""))
	assert.Equal(t, StyleModern, StyleOf("brutalist"))

	_, ok := Lookup("brutalist")
	assert.False(t, ok)
}

func TestThemes(t *testing.T) {
	modern := ThemeForTemplate("")
	assert.Equal(t, StyleModern, modern.Style)
	assert.Equal(t, "sidebar", modern.Layout)

	classic := ThemeForTemplate("classic")
	assert.Equal(t, "centered", classic.Layout)
	assert.Equal(t, "serif", classic.Typography)

	assert.Equal(t, modern, ThemeFor(Style(42)))
}

func TestPreview(t *testing.T) {
	tpl, ok := Lookup("modern")
	require.True(t, ok)

	out := tpl.Preview(60)
	assert.Contains(t, out, "Modern Professional")
	assert.Contains(t, out, "popular")
	assert.True(t, strings.Contains(out, "Sidebar Navigation"))
}
