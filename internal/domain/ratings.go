package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Ratings holds the four optional sub-scores of an item, nominally on a 1-5 scale.
// The scale is not enforced.
type Ratings struct {
	Story         *float64 `json:"story,omitempty"`
	Graphics      *float64 `json:"graphics,omitempty"`
	Gameplay      *float64 `json:"gameplay,omitempty"`
	Replayability *float64 `json:"replayability,omitempty"`
}

// Sum returns the total of all sub-scores with missing ones counted as zero.
func (r *Ratings) Sum() float64 {
	if r == nil {
		return 0
	}
	return valueOrZero(r.Story) + valueOrZero(r.Graphics) + valueOrZero(r.Gameplay) + valueOrZero(r.Replayability)
}

// Any reports whether at least one sub-score is strictly positive.
func (r *Ratings) Any() bool {
	if r == nil {
		return false
	}
	for _, v := range []*float64{r.Story, r.Graphics, r.Gameplay, r.Replayability} {
		if v != nil && *v > 0 {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes sub-scores leniently: numbers and numeric strings are kept,
// everything else is treated as absent.
func (r *Ratings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object at all: no sub-scores.
		*r = Ratings{}
		return nil
	}

	*r = Ratings{
		Story:         decodeLenientNumber(raw["story"]),
		Graphics:      decodeLenientNumber(raw["graphics"]),
		Gameplay:      decodeLenientNumber(raw["gameplay"]),
		Replayability: decodeLenientNumber(raw["replayability"]),
	}
	return nil
}

func decodeLenientNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return &v
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
