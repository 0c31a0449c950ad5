package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncident_Format(t *testing.T) {
	got, err := Incident()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(got, "INC-"))
	body := strings.TrimPrefix(got, "INC-")
	assert.Len(t, body, incidentLength)
	for _, r := range body {
		assert.Contains(t, incidentAlphabet, string(r))
	}
}

func TestIncident_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		got := MustIncident()
		assert.False(t, seen[got], "duplicate incident id %s", got)
		seen[got] = true
	}
}
