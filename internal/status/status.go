// Package status defines the checker's three-kind error taxonomy and the
// mapping from error chains to library return codes and process exit codes.
package status

import "errors"

// Code is the checker return code surfaced to callers and, by the CLI,
// as the process exit code.
type Code int

const (
	NoError       Code = 0
	BadParameters Code = 1
	FormatError   Code = 2
)

var (
	// ErrBadParameters marks missing inputs, unreadable files and semantic
	// violations of the configuration or the scene.
	ErrBadParameters = errors.New("bad parameters")

	// ErrFormat marks syntactic violations of the log grammar.
	ErrFormat = errors.New("format error")
)

func (c Code) String() string {
	switch c {
	case NoError:
		return "no error"
	case BadParameters:
		return "bad parameters"
	case FormatError:
		return "format error"
	default:
		return "unknown"
	}
}

// Of classifies an error chain. Unclassified errors count as bad
// parameters, matching the library's catch-all return code.
func Of(err error) Code {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, ErrFormat):
		return FormatError
	default:
		return BadParameters
	}
}
