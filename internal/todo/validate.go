package todo

import (
	"unicode/utf8"

	"github.com/Makepad-fr/tada-lists/internal/model"
)

// MaxNameLength is the longest list or todo name accepted, in characters.
const MaxNameLength = 100

func validLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= MaxNameLength
}

// ValidateListName checks a trimmed candidate against the existing lists.
// Uniqueness is checked before length and only the first failure is
// returned.
func ValidateListName(name string, lists []model.List) error {
	for _, l := range lists {
		if l.Name == name {
			return errListNameTaken
		}
	}
	if !validLength(name) {
		return errListNameLength
	}
	return nil
}

// ValidateTodoName checks a trimmed todo name.
func ValidateTodoName(name string) error {
	if !validLength(name) {
		return errTodoNameLength
	}
	return nil
}
