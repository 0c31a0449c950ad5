package validation_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echo-web/internal/domain"
	domainerrors "github.com/echoverse/echo-web/internal/errors"
	"github.com/echoverse/echo-web/internal/validation"
)

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	var de *domainerrors.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, domainerrors.CodeValidation, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus())
	d, ok := de.Details.(map[string]string)
	require.True(t, ok)
	return d
}

func TestValidate_CategoryInput(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(domain.CategoryInput{Name: "Movies"}))

	err := v.Validate(domain.CategoryInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"name": "is required"}, details(t, err))
	assert.Equal(t, "name is required", err.Error())
}

func TestValidate_ItemInputRequiredFields(t *testing.T) {
	v := validation.New()

	err := v.Validate(domain.ItemInput{Title: "Halo"})
	require.Error(t, err)

	d := details(t, err)
	assert.Equal(t, "is required", d["description"])
	assert.Equal(t, "is required", d["category"])
	assert.NotContains(t, d, "title")
}

func TestValidate_OtherFieldsAreDeferred(t *testing.T) {
	v := validation.New()

	// Slug, status and release date are the gateway's concern.
	err := v.Validate(domain.ItemInput{
		Title:       "Halo",
		Description: "Spartans",
		Category:    "c1",
		Slug:        "NOT A SLUG",
		Status:      "bogus",
		ReleaseDate: "someday",
	})
	assert.NoError(t, err)
}

func TestValidate_CharacterDescriptionBound(t *testing.T) {
	v := validation.New()
	base := domain.ItemInput{Title: "Halo", Description: "d", Category: "c1"}

	ok := base
	ok.Characters = []domain.Character{{Name: "Chief", Description: strings.Repeat("é", domain.MaxCharacterDescription)}}
	assert.NoError(t, v.Validate(ok))

	tooLong := base
	tooLong.Characters = []domain.Character{
		{Name: "Chief"},
		{Name: "Cortana", Description: strings.Repeat("a", domain.MaxCharacterDescription+1)},
	}
	err := v.Validate(tooLong)
	require.Error(t, err)
	assert.Equal(t, "must not exceed 300 characters", details(t, err)["characters[1].description"])
}
