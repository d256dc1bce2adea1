package report

import "fmt"

// UnknownFormatError represents an error when an output format is not supported
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format: %s", e.Format)
}

// WriteError represents an error when writing rendered output fails
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write output: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
