package digits

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidDigitCharacter is matched by every error reporting a symbol
// outside '0'..'9' in decimal input.
var ErrInvalidDigitCharacter = errors.New("invalid digit character")

// InvalidDigitError reports the offending byte and its offset in the input,
// counted from the first (most significant) character.
type InvalidDigitError struct {
	Char   byte
	Offset int
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", ErrInvalidDigitCharacter, e.Char, e.Offset)
}

// Is makes errors.Is(err, ErrInvalidDigitCharacter) hold.
func (e *InvalidDigitError) Is(target error) bool {
	return target == ErrInvalidDigitCharacter
}

// Parse builds a canonical digit sequence from decimal text written most
// significant digit first. Leading zeros are accepted and dropped. The empty
// string is zero. Signs, whitespace and separators are rejected.
func Parse(s string) (Digits, error) {
	return parse(s)
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(b []byte) (Digits, error) {
	return parse(b)
}

func parse[S ~string | ~[]byte](s S) (Digits, error) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < '0' || c > '9' {
			return nil, &InvalidDigitError{Char: c, Offset: i}
		}
	}
	d := make(Digits, 0, max(len(s), 1))
	for i := len(s) - 1; i >= 0; i-- {
		d = append(d, Digit(s[i]-'0'))
	}
	d.Prune()
	return d, nil
}

// FromChars consumes characters most significant first from seq. sizeHint
// reserves capacity when the caller knows the input length; pass 0 when it
// does not.
func FromChars(seq iter.Seq[byte], sizeHint int) (Digits, error) {
	buf := make([]byte, 0, max(sizeHint, 0))
	for c := range seq {
		buf = append(buf, c)
	}
	return parse(buf)
}
