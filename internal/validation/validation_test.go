package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  *string  `json:"name" validate:"required,notblank"`
	Email *string  `json:"email" validate:"required,notblank,email"`
	Score *float64 `json:"score" validate:"omitnil,gte=0"`
	Note  string   `json:"note"`
}

func (signup) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":  "name missing",
		"name.notblank":  "name blank",
		"email.required": "email missing",
		"email.email":    "email malformed",
	}
}

type bare struct {
	Count *int `json:"count" validate:"omitnil,gte=1"`
}

func ptr[T any](v T) *T { return &v }

func TestStructValid(t *testing.T) {
	err := Struct(signup{Name: ptr("Ana"), Email: ptr("ana@example.com"), Score: ptr(0.0)})
	assert.NoError(t, err)
}

func TestStructCollectsEveryField(t *testing.T) {
	err := Struct(signup{Name: ptr("   "), Score: ptr(-1.5)})
	require.Error(t, err)

	var fields Errors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, Errors{
		"name":  "name blank",
		"email": "email missing",
		"score": "El campo score debe ser mayor o igual que 0",
	}, fields)
}

func TestStructUsesFormatMessage(t *testing.T) {
	err := Struct(signup{Name: ptr("Ana"), Email: ptr("not-an-email")})

	var fields Errors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "email malformed", fields["email"])
	assert.Len(t, fields, 1)
}

func TestStructSkipsAbsentOptionalFields(t *testing.T) {
	assert.NoError(t, Struct(bare{}))

	err := Struct(bare{Count: ptr(0)})
	var fields Errors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "count")
}

func TestErrorsMessageIsStable(t *testing.T) {
	e := Errors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", e.Error())
}
