package theory

import (
	"errors"
	"fmt"
)

// Error kinds returned by this package. Use errors.Is to classify a failure.
var (
	// ErrInvalidToken reports a string, offset or value that matches no
	// enumeration member.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidConstruction reports a value whose parts violate an
	// invariant, e.g. a perfect third or a pitch outside the program range.
	ErrInvalidConstruction = errors.New("invalid construction")
	// ErrInvalidParse is matched by every *ParseError.
	ErrInvalidParse = errors.New("invalid parse")
	// ErrMissingInformation and ErrExtraInformation refine ErrInvalidParse.
	ErrMissingInformation = errors.New("missing information")
	ErrExtraInformation   = errors.New("contains extra information")
	// ErrUnresolvableSpelling means no candidate satisfied any predicate of a
	// SpellingPolicy.
	ErrUnresolvableSpelling = errors.New("unresolvable spelling")
	// ErrEmptyPolicy is returned when resolving with a policy that has no
	// predicates.
	ErrEmptyPolicy = errors.New("spelling policy has no predicates")
	// ErrInvariant marks a defect in this package rather than bad input.
	ErrInvariant = errors.New("invariant violation")
)

// TokenError is returned by enumeration lookups.
type TokenError struct {
	Kind  string
	Value any
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Kind, e.Value)
}

// Is matches ErrInvalidToken.
func (e *TokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

func invalidToken(kind string, value any) error {
	return &TokenError{Kind: kind, Value: value}
}

// ParseError is returned by the Parse* functions for malformed notation.
type ParseError struct {
	Kind   string // "pitch", "interval", ...
	Input  string
	Reason error // ErrMissingInformation, ErrExtraInformation or an underlying cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s string: %q (%v)", e.Kind, e.Input, e.Reason)
}

// Unwrap exposes both ErrInvalidParse and the reason.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidParse, e.Reason}
}

func missingInformation(kind, input string) error {
	return &ParseError{Kind: kind, Input: input, Reason: ErrMissingInformation}
}

func extraInformation(kind, input string) error {
	return &ParseError{Kind: kind, Input: input, Reason: ErrExtraInformation}
}

func invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
