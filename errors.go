package polyroots

import (
	"errors"

	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ErrParse covers input that is not a single-variable polynomial: bad
// characters, malformed syntax, division by a non-constant, more than one
// variable.
var ErrParse = errors.New("cannot parse polynomial")

// ErrDegreeLimit is returned when a polynomial's degree reaches the
// configured maximum.
var ErrDegreeLimit = errors.New("polynomial degree exceeds limit")

// ErrCoefficientRange is returned when a coefficient is too large for the
// rational zero test.
var ErrCoefficientRange = errors.New("coefficient out of range")

// ErrUnknownCandidate is returned when a guess is not in the remaining
// candidate pool.
var ErrUnknownCandidate = errors.New("not a remaining candidate root")

// ErrSessionFinished is returned when guessing after the session ended.
var ErrSessionFinished = errors.New("synthetic division session is finished")

// ErrStageLocked is returned when navigating to a stage that has not been
// reached yet.
var ErrStageLocked = errors.New("stage not reached yet")

func IsParseFailure(err error) bool {
	switch errgo.Cause(err) {
	case ErrParse, cas.ErrSyntax, cas.ErrMultivariate, cas.ErrNotPolynomial:
		return true
	}
	return false
}

func IsDegreeLimit(err error) bool {
	switch errgo.Cause(err) {
	case ErrDegreeLimit, cas.ErrDegreeTooHigh:
		return true
	}
	return false
}

func IsCoefficientRange(err error) bool {
	switch errgo.Cause(err) {
	case ErrCoefficientRange, cas.ErrTooLarge:
		return true
	}
	return false
}

// IsSessionFailure reports errors caused by a misplaced guess or navigation.
func IsSessionFailure(err error) bool {
	switch errgo.Cause(err) {
	case ErrUnknownCandidate, ErrSessionFinished, ErrStageLocked:
		return true
	}
	return false
}

// parseFailure wraps a kernel error so that its cause becomes ErrParse,
// unless the kernel refused on size.
func parseFailure(err error, input string) error {
	switch errgo.Cause(err) {
	case cas.ErrDegreeTooHigh:
		return errgo.WithCausef(err, ErrDegreeLimit, "polynomial %q", input)
	case cas.ErrTooLarge:
		return errgo.WithCausef(err, ErrCoefficientRange, "polynomial %q", input)
	}
	return errgo.WithCausef(err, ErrParse, "polynomial %q", input)
}
