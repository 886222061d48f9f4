package config

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// KeyOrder returns the key comparator for a dataset. Numeric order compares
// keys that parse as numbers by value and places them before all other keys,
// which keep lexical order.
func KeyOrder(numeric bool) func(a, b string) int {
	return keyOrder(numeric, strings.Compare)
}

// Order returns the key comparator selected by the settings. A collation tag
// replaces byte order with the language's collation for non-numeric keys.
func (s Settings) Order() func(a, b string) int {
	if s.Collation == "" {
		return KeyOrder(s.Numeric)
	}
	c := collate.New(language.Make(s.Collation))
	return keyOrder(s.Numeric, func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
}

func keyOrder(numeric bool, lexical func(a, b string) int) func(a, b string) int {
	if !numeric {
		return lexical
	}
	return func(a, b string) int {
		x, errA := strconv.ParseFloat(a, 64)
		y, errB := strconv.ParseFloat(b, 64)
		switch {
		case errA == nil && errB == nil:
			if c := cmp.Compare(x, y); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return lexical(a, b)
		}
	}
}

// validCollation reports an error for tags the language package cannot parse.
func validCollation(tag string) error {
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("%w: settings.collation %q: %v", ErrTypeMismatch, tag, err)
	}
	return nil
}
