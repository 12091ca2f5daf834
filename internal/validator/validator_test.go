package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Template string `json:"template" validate:"omitempty,is-template-id"`
	Filter   string `json:"filter" validate:"is-filter-type"`
	Name     string `json:"name" validate:"required"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Template: "classic", Filter: "skills", Name: "x"}))
	require.NoError(t, v.Validate(&sample{Name: "x"}))

	err := v.Validate(&sample{Template: "retro", Filter: "location"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, vErr.Errors, 3)
	assert.Contains(t, vErr.Errors, "sample.template")
	assert.Contains(t, vErr.Errors, "sample.filter")
	assert.Equal(t, "This field is required", vErr.Errors["sample.name"])
}
