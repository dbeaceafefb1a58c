// Package semver implements the version range matching behind the =~
// operator.
//
// The range language is deliberately small: an optional =, <, <=, >, >=,
// ~ or ^ prefix followed by a major.minor.patch triple. A bare version
// means exact equality. ~ matches when major and minor agree with the
// wanted version, ^ when major agrees; the ordering operators compare
// triples component-wise. This is narrower than npm-style ranges on
// purpose.
package semver

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/sansecio/bspp/diag"
)

// Version is a dotted major.minor.patch triple.
type Version struct {
	Major, Minor, Patch int
}

// Parse reads a three-component dotted version such as "4.06.1". Leading
// zeros are fine, and the patch component may carry a trailing tag the way
// OCaml versions do ("4.06.1+BS"); anything else that is not three
// non-negative decimal components is a FormatError.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, &diag.FormatError{Text: s}
	}
	var n [3]int
	for i, part := range parts {
		if i == 2 {
			part = digitPrefix(part)
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return Version{}, &diag.FormatError{Text: s}
		}
		n[i] = v
	}
	return Version{Major: n[0], Minor: n[1], Patch: n[2]}, nil
}

// digitPrefix cuts s at the first non-digit, so "1+BS" parses as 1. An
// empty prefix is left to fail the Atoi above.
func digitPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}

// Compare orders two versions numerically by component.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, o.Patch)
}

// Satisfies reports whether version matches the range specifier spec.
func Satisfies(version, spec string) (bool, error) {
	op, rest := splitOp(spec)
	want, err := Parse(rest)
	if err != nil {
		return false, err
	}
	have, err := Parse(version)
	if err != nil {
		return false, err
	}
	switch op {
	case "~":
		return have.Major == want.Major && have.Minor == want.Minor, nil
	case "^":
		return have.Major == want.Major, nil
	case "<":
		return have.Compare(want) < 0, nil
	case "<=":
		return have.Compare(want) <= 0, nil
	case ">":
		return have.Compare(want) > 0, nil
	case ">=":
		return have.Compare(want) >= 0, nil
	default: // "=" or no prefix
		return have.Compare(want) == 0, nil
	}
}

func splitOp(spec string) (op, rest string) {
	switch {
	case strings.HasPrefix(spec, "<="), strings.HasPrefix(spec, ">="):
		return spec[:2], spec[2:]
	case spec != "" && strings.ContainsAny(spec[:1], "=<>~^"):
		return spec[:1], spec[1:]
	}
	return "", spec
}
