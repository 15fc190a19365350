package validation

import (
	"errors"
	"unicode"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrIllegalCharacter = errors.New("invalid character detected")
	ErrRequired         = errors.New("is required but not set")
)

// asciiAllowed reports whether an ASCII rune may appear in free text:
// printable range 32-126 plus the common whitespace characters.
// Non-ASCII UTF-8 is always allowed and never reaches this check.
func asciiAllowed(r rune) bool {
	if r >= 32 && r <= 126 {
		return true
	}
	return r == '\n' || r == '\r' || r == '\t'
}

// Text validates a free-text form field. Any ASCII control character
// fails the whole field; non-ASCII codepoints pass untouched.
func Text(input string, required bool) error {
	for _, r := range input {
		if r < 128 && !asciiAllowed(r) {
			return ErrIllegalCharacter
		}
	}
	if required && input == "" {
		return ErrRequired
	}
	return nil
}

// SearchQuery validates a user search query: 3-100 characters,
// ASCII must be alphanumeric or space, non-ASCII must be alphanumeric.
func SearchQuery(q string) error {
	return ozzo.Validate(q,
		ozzo.Required,
		ozzo.Length(3, 100),
		ozzo.By(searchRunes),
	)
}

func searchRunes(value interface{}) error {
	q, _ := value.(string)
	for _, r := range q {
		if r < 128 {
			if !isASCIIAlphanumeric(r) && r != ' ' {
				return errors.New("only alphanumeric characters and spaces are allowed")
			}
		} else if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errors.New("only alphanumeric characters are allowed")
		}
	}
	return nil
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
