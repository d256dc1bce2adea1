package structs

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why a read attempt failed
type ErrorKind int

const (
	NotFound ErrorKind = iota
	AccessDenied
	IOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case AccessDenied:
		return "AccessDenied"
	case IOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// Code returns a stable, machine-readable code for the kind
func (k ErrorKind) Code() string {
	switch k {
	case NotFound:
		return "NOT_FOUND"
	case AccessDenied:
		return "FORBIDDEN"
	case IOFailure:
		return "IO_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// OutputFormat selects how a read outcome is rendered
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatChars OutputFormat = "chars"
	FormatTable OutputFormat = "table"
)

// ParseOutputFormat normalizes a user supplied format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatChars, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be one of text, chars, table)", s)
	}
}
