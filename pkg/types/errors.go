package types

import "fmt"

// ErrorCode identifies a SQL/JSON path execution error condition.
// Values follow the SQLSTATE codes assigned to SQL/JSON by the standard.
type ErrorCode string

const (
	// 22xxx: data exceptions raised during path evaluation
	ErrArrayNotFound     ErrorCode = "22039" // sql_json_array_not_found
	ErrMemberNotFound    ErrorCode = "2203A" // sql_json_member_not_found
	ErrNumberNotFound    ErrorCode = "2203B" // sql_json_number_not_found
	ErrObjectNotFound    ErrorCode = "2203C" // sql_json_object_not_found
	ErrScalarRequired    ErrorCode = "2203F" // sql_json_scalar_required
	ErrSingletonRequired ErrorCode = "22038" // singleton_sql_json_item_required
	ErrNonNumericItem    ErrorCode = "22036" // non_numeric_sql_json_item
	ErrInvalidSubscript  ErrorCode = "22033" // invalid_sql_json_subscript
	ErrInvalidDatetime   ErrorCode = "22031" // invalid_argument_for_sql_json_datetime_function
	ErrDivisionByZero    ErrorCode = "22012"
	ErrNumericOutOfRange ErrorCode = "22003"
	ErrInvalidVariables  ErrorCode = "22023" // invalid_parameter_value

	// 42xxx: binding errors
	ErrUndefinedVariable ErrorCode = "42704" // undefined_object

	// Non-suppressible conditions: these indicate a bug in the path compiler
	// or in the engine itself, never a data-dependent condition.
	ErrStackTooDeep ErrorCode = "54001" // statement_too_complex
	ErrInternal     ErrorCode = "XX000"
)

// Standard messages for the SQL/JSON error conditions.
var stdMessages = map[ErrorCode]string{
	ErrArrayNotFound:     "SQL/JSON array not found",
	ErrObjectNotFound:    "SQL/JSON object not found",
	ErrMemberNotFound:    "SQL/JSON member not found",
	ErrNumberNotFound:    "SQL/JSON number not found",
	ErrScalarRequired:    "SQL/JSON scalar required",
	ErrSingletonRequired: "singleton SQL/JSON item required",
	ErrNonNumericItem:    "non-numeric SQL/JSON item",
	ErrInvalidSubscript:  "invalid SQL/JSON subscript",
	ErrInvalidDatetime:   "invalid argument for SQL/JSON datetime function",
}

// Error represents a structured path execution error.
type Error struct {
	Code    ErrorCode
	Message string
	Detail  string
	Err     error
}

// NewError creates an error with the standard message for code, or message
// if no standard message is registered for it.
func NewError(code ErrorCode, message string) *Error {
	if message == "" {
		message = stdMessages[code]
	}
	return &Error{Code: code, Message: message}
}

// Errorf creates an error for code with its standard message and a
// formatted detail string.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	e := NewError(code, "")
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Suppressible reports whether the condition may be converted into a soft
// query failure instead of aborting the whole call. Internal invariant
// violations and stack exhaustion are always fatal.
func (e *Error) Suppressible() bool {
	return e.Code != ErrInternal && e.Code != ErrStackTooDeep
}
