package registry

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// MaxNameLength is the longest accepted name, in characters.
const MaxNameLength = 20

var (
	// ErrNotFound is returned when a name has no entry of the requested kind.
	ErrNotFound = errors.New("not found")

	// ErrProtectedName matches every *ProtectedNameError via errors.Is.
	ErrProtectedName = errors.New("protected name")
)

// ProtectedNameError reports an attempt to redefine a default entry.
type ProtectedNameError struct {
	Kind Kind
	Name string
}

func (e *ProtectedNameError) Error() string {
	return fmt.Sprintf("cannot overwrite %s %s: it is one of the built-in examples", e.Kind, e.Name)
}

// Is makes errors.Is(err, ErrProtectedName) true.
func (e *ProtectedNameError) Is(target error) bool {
	return target == ErrProtectedName
}

// Normalize returns the canonical (upper-case, trimmed) form of a name.
func Normalize(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}

// ValidateName checks that name is non-empty, made of letters, digits and
// underscores, and at most MaxNameLength characters long once normalized.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &notation.ValidationError{Message: "name cannot be empty"}
	}
	if strings.Trim(name, "_") == "" {
		return &notation.ValidationError{Input: name, Message: "name needs at least one letter or digit"}
	}
	for _, c := range name {
		if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return &notation.ValidationError{Input: name, Message: "name may only contain letters, digits and underscores"}
		}
	}
	if utf8.RuneCountInString(Normalize(name)) > MaxNameLength {
		return &notation.ValidationError{Input: name, Message: fmt.Sprintf("name cannot be longer than %d characters", MaxNameLength)}
	}
	return nil
}
