package serde

import (
	"fmt"
	"strings"
)

// Error is raised by the generic machinery and by visitors.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Custom creates an error with a formatted message.
func Custom(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// InvalidType reports input of the wrong shape, e.g.
// "invalid type: string \"x\", expected i32".
func InvalidType(unexpected, expected string) error {
	return Custom("invalid type: %s, expected %s", unexpected, expected)
}

// InvalidValue reports input of the right shape but a wrong value.
func InvalidValue(unexpected, expected string) error {
	return Custom("invalid value: %s, expected %s", unexpected, expected)
}

func InvalidLength(n int, expected string) error {
	return Custom("invalid length %d, expected %s", n, expected)
}

func MissingField(name string) error {
	return Custom("missing field `%s`", name)
}

func DuplicateField(name string) error {
	return Custom("duplicate field `%s`", name)
}

func UnknownVariant(variant string, expected []string) error {
	if len(expected) == 0 {
		return Custom("unknown variant `%s`, there are no variants", variant)
	}
	return Custom("unknown variant `%s`, expected %s", variant, oneOf(expected))
}

func oneOf(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	if len(quoted) == 2 {
		return quoted[0] + " or " + quoted[1]
	}
	return "one of " + strings.Join(quoted, ", ")
}

// Unexpected descriptions used in InvalidType messages.
func unexpectedInt(v any) string    { return fmt.Sprintf("integer `%v`", v) }
func unexpectedFloat(v any) string  { return fmt.Sprintf("floating point `%v`", v) }
func unexpectedStr(s string) string { return fmt.Sprintf("string %q", s) }
func unexpectedBool(b bool) string  { return fmt.Sprintf("boolean `%t`", b) }
