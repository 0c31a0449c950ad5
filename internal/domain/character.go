package domain

// MaxCharacterDescription bounds a character description in the admin form.
// The gateway does not enforce it.
const MaxCharacterDescription = 300

// Character is a named figure featured in an item.
type Character struct {
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty" validate:"max=300"`
}
