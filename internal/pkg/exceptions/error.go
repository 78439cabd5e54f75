package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"claimsync-service/internal/pkg/constvars"
)

// Error kinds shared by the EDI pipeline. Every CustomError built by the
// factories in this package unwraps to one of them when it applies, so
// callers branch with errors.Is.
var (
	MalformedInput               = errors.New("malformed input")
	UnmatchedResponse            = errors.New("unmatched response")
	TransportFailure             = errors.New("transport failure")
	GenerationInvariantViolation = errors.New("generation invariant violation")
)

// ReconciliationInProgress is returned when another run holds the leader lock.
var ReconciliationInProgress = errors.New("reconciliation in progress")

// ClaimStatusConflict is returned when a claim no longer has the status a
// transition was computed from.
var ClaimStatusConflict = errors.New("claim status conflict")

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"-"`
	Locations     []Location `json:"-"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(nil, err, statusCode, clientMessage, devMessage)
}

// BuildNewKindError is BuildNewCustomError for errors that belong to one of
// the pipeline kinds above.
func BuildNewKindError(kind, err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildCustomError(kind, err, statusCode, clientMessage, devMessage)
}

func buildCustomError(kind, err error, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(3)},
	}

	var existing *CustomError
	if errors.As(err, &existing) {
		customErr.Locations = append(customErr.Locations, existing.Locations...)
	}

	switch {
	case kind != nil && err != nil:
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
		customErr.Err = fmt.Errorf("%w: %w", kind, err)
	case kind != nil:
		customErr.Err = kind
	case err != nil:
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
		customErr.Err = err
	}
	return customErr
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
