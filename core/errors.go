package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is raised before any network call is made; required-field
// and format checks happen client-side.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ErrorKind classifies an APIError so callers can branch on the kind of
// failure instead of matching on error text.
type ErrorKind int

const (
	// KindTransport covers unreachable network, timeouts and malformed
	// response envelopes (HTML where JSON was expected, empty error bodies).
	KindTransport ErrorKind = iota + 1
	// KindAuthExpired is a 401; it always forces a global logout.
	KindAuthExpired
	// KindBusiness is a well-formed 4xx carrying a server message that is
	// surfaced to the user verbatim.
	KindBusiness
	// KindServer is a 5xx or an unparseable success body.
	KindServer
)

// APIError is any failure raised at the HTTP boundary.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (err *APIError) Error() string {
	return err.Message
}

var (
	// ErrSessionExpired is returned to in-flight callers after a 401 has
	// already triggered the global logout, so their spinners can stop.
	ErrSessionExpired = &APIError{Kind: KindAuthExpired, Status: 401, Message: "session expired, please log in again"}

	// ErrMisconfiguredEndpoint flags an HTML body on a JSON endpoint,
	// usually a reverse proxy routing the request somewhere else.
	ErrMisconfiguredEndpoint = &APIError{Kind: KindTransport, Message: "misconfigured endpoint: received HTML instead of JSON"}

	errConnectivity = &APIError{Kind: KindTransport, Message: "could not reach the server, check your connection"}
)

func NewTransportError(msg string) error {
	if msg == "" {
		return errConnectivity
	}
	return &APIError{Kind: KindTransport, Message: msg}
}

func NewBusinessError(status int, msg string) error {
	return &APIError{Kind: KindBusiness, Status: status, Message: msg}
}

func NewServerError(status int) error {
	return &APIError{Kind: KindServer, Status: status, Message: "something went wrong, please try again later"}
}

func kindOf(err error) ErrorKind {
	if aerr, ok := errors.Cause(err).(*APIError); ok {
		return aerr.Kind
	}
	return 0
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

func IsTransportError(err error) bool   { return kindOf(err) == KindTransport }
func IsAuthExpiredError(err error) bool { return kindOf(err) == KindAuthExpired }
func IsBusinessError(err error) bool    { return kindOf(err) == KindBusiness }
func IsServerError(err error) bool      { return kindOf(err) == KindServer }

func IsMisconfiguredEndpoint(err error) bool {
	return errors.Cause(err) == ErrMisconfiguredEndpoint
}
