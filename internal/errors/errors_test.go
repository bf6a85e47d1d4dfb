package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mimihimesama/item-simulator/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "character not found")

	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "character not found", err.Message)
	assert.Equal(t, "NOT_FOUND: character not found", err.Error())
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := errors.AlreadyExists("name already in use")
	wrapped := errors.Wrap(inner, "failed to create character")

	assert.Equal(t, errors.CodeAlreadyExists, wrapped.Code)
	assert.True(t, errors.IsAlreadyExists(wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrap_DefaultsToInternal(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("connection refused"), "failed to load item")

	assert.Equal(t, errors.CodeInternal, wrapped.Code)
	assert.True(t, errors.IsInternal(wrapped))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Code
	}{
		{"nil error", nil, errors.CodeOK},
		{"structured error", errors.NotFound("missing"), errors.CodeNotFound},
		{"plain error", fmt.Errorf("boom"), errors.CodeInternal},
		{"wrapped aborted", errors.Wrap(errors.Aborted("conflict"), "update failed"), errors.CodeAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.GetCode(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeAlreadyExists, http.StatusBadRequest},
		{errors.CodeFailedPrecondition, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAborted, http.StatusConflict},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors returns nil", func(t *testing.T) {
		assert.NoError(t, errors.NewValidationBuilder().Build())
	})

	t.Run("collects field errors", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("name", "   ", vb)
		errors.ValidateMaxLength("name", "this name is way too long for a character to carry around", 50, vb)

		err := vb.Build()
		assert.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("max length counts runes", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		errors.ValidateMaxLength("item_name", "검은칼날의속삭임", 15, vb)
		assert.NoError(t, vb.Build())
	})
}
