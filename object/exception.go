package object

// Host exception type names.
const (
	TypeError     = "TypeError"
	ValueError    = "ValueError"
	KeyError      = "KeyError"
	IndexError    = "IndexError"
	OverflowError = "OverflowError"
	BaseException = "Exception"
)

// Exception is an exception raised by the host runtime.
type Exception struct {
	Type    string
	Message string
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Type
	}
	return e.Type + ": " + e.Message
}

// Is matches exceptions of the same type.
func (e *Exception) Is(target error) bool {
	if t, ok := target.(*Exception); ok {
		return e.Type == t.Type
	}
	return false
}

func NewTypeError(msg string) *Exception     { return &Exception{Type: TypeError, Message: msg} }
func NewValueError(msg string) *Exception    { return &Exception{Type: ValueError, Message: msg} }
func NewKeyError(msg string) *Exception      { return &Exception{Type: KeyError, Message: msg} }
func NewIndexError(msg string) *Exception    { return &Exception{Type: IndexError, Message: msg} }
func NewOverflowError(msg string) *Exception { return &Exception{Type: OverflowError, Message: msg} }
