// Package failure defines the error kinds a conversion run can end with.
// Every error carries the kind plus whatever context identifies the offending
// input (path, data row, source line, field name).
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed conversion.
type Kind int

const (
	// Unknown is returned by KindOf for errors not produced by this package.
	Unknown Kind = iota
	// SourceNotFound means the input path is missing or unreadable.
	SourceNotFound
	// MalformedInput covers a bad header or a row with the wrong field count.
	MalformedInput
	// CoordinateParse means latitude or longitude is not a finite real number.
	CoordinateParse
	// OutOfDomain means the latitude cannot be projected (|lat| >= 90).
	OutOfDomain
	// DestinationWrite means the output document could not be written.
	DestinationWrite
)

var kindNames = map[Kind]string{
	Unknown:          "Unknown",
	SourceNotFound:   "SourceNotFound",
	MalformedInput:   "MalformedInputError",
	CoordinateParse:  "CoordinateParseError",
	OutOfDomain:      "OutOfDomainError",
	DestinationWrite: "DestinationWriteError",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode maps a kind to a process exit status.
func (k Kind) ExitCode() int {
	switch k {
	case SourceNotFound:
		return 2
	case MalformedInput:
		return 3
	case CoordinateParse:
		return 4
	case OutOfDomain:
		return 5
	case DestinationWrite:
		return 6
	default:
		return 1
	}
}

// Sentinels for errors.Is checks. Only the kind is compared.
var (
	ErrSourceNotFound   = &Error{Kind: SourceNotFound}
	ErrMalformedInput   = &Error{Kind: MalformedInput}
	ErrCoordinateParse  = &Error{Kind: CoordinateParse}
	ErrOutOfDomain      = &Error{Kind: OutOfDomain}
	ErrDestinationWrite = &Error{Kind: DestinationWrite}
)

// Error is a conversion failure with identifying context.
// Row is the 1-based data row index (the header is row 0), Line the source line.
type Error struct {
	Err   error
	Path  string
	Field string
	Kind  Kind
	Row   int
	Line  int
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())

	var ctx []string
	if e.Path != "" {
		ctx = append(ctx, "path "+e.Path)
	}
	if e.Row > 0 {
		ctx = append(ctx, fmt.Sprintf("row %d", e.Row))
	}
	if e.Line > 0 {
		ctx = append(ctx, fmt.Sprintf("line %d", e.Line))
	}
	if e.Field != "" {
		ctx = append(ctx, "field "+e.Field)
	}
	if len(ctx) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(ctx, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind wrapping cause.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Newf creates an Error of the given kind with a formatted cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// AtRow sets the data row index and returns the receiver.
func (e *Error) AtRow(row int) *Error {
	e.Row = row
	return e
}

// AtLine sets the source line and returns the receiver.
func (e *Error) AtLine(line int) *Error {
	e.Line = line
	return e
}

// InField sets the offending field name and returns the receiver.
func (e *Error) InField(field string) *Error {
	e.Field = field
	return e
}

// WithPath sets the file path and returns the receiver.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var fe *Error
	ok := errors.As(err, &fe)
	return fe, ok
}
