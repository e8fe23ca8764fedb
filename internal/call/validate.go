package call

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/jsonv/internal/predicate"
)

var ErrInvalidCall = errors.New("invalid call")

// Validate checks semantic well-formedness of a parsed call list.
// known reports whether a keyword name is registered; a nil known
// skips the keyword existence check.
func Validate(calls []Call, known func(string) bool) error {
	if len(calls) == 0 {
		return fmt.Errorf("%w: call file has no calls", ErrInvalidCall)
	}

	for index, c := range calls {
		if err := ValidateCall(c, known); err != nil {
			return fmt.Errorf("%w: call %d: %w", ErrInvalidCall, index+1, err)
		}
	}

	return nil
}

// ValidateCall checks a single call.
func ValidateCall(c Call, known func(string) bool) error {
	if strings.TrimSpace(c.Keyword) == "" {
		return errors.New("keyword cannot be empty")
	}

	if known != nil && !known(c.Keyword) {
		return fmt.Errorf("unknown keyword: %s", c.Keyword)
	}

	for index, arg := range c.Args {
		if arg.IsFile && strings.TrimSpace(arg.File) == "" {
			return fmt.Errorf("argument %d file path cannot be empty", index+1)
		}
	}

	if c.ExpectError {
		if c.Expect != nil {
			return errors.New("cannot set both expect and expect_error")
		}
		if c.Capture != "" {
			return errors.New("cannot capture the result of a call marked expect_error")
		}
	}

	if c.Expect != nil {
		if err := validateExpect(*c.Expect); err != nil {
			return err
		}
	}

	return nil
}

func validateExpect(e Expect) error {
	op, err := predicate.ParseOperator(e.Operation)
	if err != nil {
		return fmt.Errorf("expect is invalid: %w", err)
	}

	expr := predicate.Expr{Op: op, Value: e.Value, HasValue: e.HasValue}
	if err := predicate.ValidateExpr(expr); err != nil {
		return fmt.Errorf("expect is invalid: %w", err)
	}

	return nil
}
