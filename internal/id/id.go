// Package id mints short identifiers for incidents and other log-correlated events.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// incidentAlphabet avoids characters that are easy to misread when a user reads an id aloud.
const incidentAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const incidentLength = 10

// Incident returns an id such as "INC-7F3K9Q2ZLM" that is shown to users and logged with the
// matching stack trace.
func Incident() (string, error) {
	id, err := gonanoid.Generate(incidentAlphabet, incidentLength)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return "INC-" + id, nil
}

// MustIncident is like Incident but panics if the system has no entropy.
func MustIncident() string {
	id, err := Incident()
	if err != nil {
		panic(fmt.Sprintf("failed to generate incident ID: %v", err))
	}
	return id
}
