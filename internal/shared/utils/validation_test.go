package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qreserve/qreserve/internal/shared/errors"
)

type colorRequest struct {
	Name  string `json:"name" binding:"required,notblank" validate:"required,notblank"`
	Color string `json:"color" validate:"omitempty,test_color"`
}

func TestRegisterEnumValidation(t *testing.T) {
	RegisterEnumValidation("test_color", func(s string) bool {
		return s == "red" || s == "blue"
	})

	assert.NoError(t, ValidateStruct(colorRequest{Name: "a", Color: "red"}))
	assert.NoError(t, ValidateStruct(colorRequest{Name: "a"}))

	err := ValidateStruct(colorRequest{Name: "a", Color: "green"})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, `color has an unsupported value "green"`)
}

func TestValidateStruct_NotBlank(t *testing.T) {
	err := ValidateStruct(colorRequest{Name: "   "})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Details, "name must not be blank")
}
