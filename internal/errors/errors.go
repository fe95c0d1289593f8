// Package errors provides a lightweight structured error type (SiteGenError)
// for category-based classification across the build pipeline and CLI.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the category of a sitegen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content authoring errors
	CategoryContent ErrorCategory = "content"

	// Build and processing errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// SiteGenError is a structured error with category, severity, and context
type SiteGenError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for SiteGenError
type ContextFields map[string]any

// Error implements the error interface. Context fields are rendered in key
// order so the offending slug, file or marker is always named in the message.
func (e *SiteGenError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s): %s", e.Category, e.Severity, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, e.Context[k])
		}
		sb.WriteString(")")
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *SiteGenError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *SiteGenError) WithContext(key string, value any) *SiteGenError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new SiteGenError
func New(category ErrorCategory, severity ErrorSeverity, message string) *SiteGenError {
	return &SiteGenError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new SiteGenError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SiteGenError {
	return &SiteGenError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if sge, ok := err.(*SiteGenError); ok {
		return sge.Category == category
	}
	return false
}

// IsFatal reports whether the error should abort the whole build.
func IsFatal(err error) bool {
	if sge, ok := err.(*SiteGenError); ok {
		return sge.Severity == SeverityFatal
	}
	// Unclassified errors are treated as fatal; the pipeline has no retry path.
	return err != nil
}
