package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeCategoryNotFound, http.StatusNotFound},
		{CodeItemNotFound, http.StatusNotFound},
		{CodeGatewayUnreachable, http.StatusBadGateway},
		{CodeGatewayRejected, http.StatusUnprocessableEntity},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeRender, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := CategoryNotFoundf("category %q not found", "nope")

	assert.True(t, Is(err, ErrCategoryNotFound))
	assert.False(t, Is(err, ErrItemNotFound))
	assert.Equal(t, `category "nope" not found`, err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolve: %w", ItemNotFoundf("item %q not found", "matrix"))

	assert.True(t, Is(err, ErrItemNotFound))
	assert.Equal(t, CodeItemNotFound, CodeOf(err))
}

func TestError_WithCause(t *testing.T) {
	err := GatewayUnreachable("Failed to fetch categories", io.ErrUnexpectedEOF)

	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.True(t, Is(err, ErrGatewayUnreachable))
	assert.Contains(t, err.Error(), "Failed to fetch categories")
}

func TestError_WithDetailsKeepsCode(t *testing.T) {
	err := Validation("validation failed").WithDetails(map[string]string{"title": "is required"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.NotNil(t, err.Details)
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(io.EOF))
}

func TestCode_IsNotFound(t *testing.T) {
	assert.True(t, CodeCategoryNotFound.IsNotFound())
	assert.True(t, CodeItemNotFound.IsNotFound())
	assert.True(t, CodeNotFound.IsNotFound())
	assert.False(t, CodeGatewayRejected.IsNotFound())
}
