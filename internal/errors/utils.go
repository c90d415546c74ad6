package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a ToolkitError if the
// input is not already one.
func Wrap(err error, errType ErrorType, code, message string) *ToolkitError {
	if err == nil {
		return nil
	}

	var te *ToolkitError
	if errors.As(err, &te) {
		return &ToolkitError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       te,
			Context:     te.Context,
			Component:   te.Component,
			FilePath:    te.FilePath,
			Recoverable: te.Recoverable,
		}
	}

	return &ToolkitError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation,
	}
}

// WrapIO wraps an error as an I/O error. A nil cause still yields an error so
// callers can report failures that have no underlying OS error.
func WrapIO(err error, code, message string) *ToolkitError {
	if err == nil {
		return NewIOError(code, message, nil)
	}
	te := Wrap(err, ErrorTypeIO, code, message)
	te.Recoverable = false
	return te
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, code, message string) *ToolkitError {
	if err == nil {
		return NewConfigError(code, message)
	}
	te := Wrap(err, ErrorTypeConfig, code, message)
	te.Recoverable = false
	return te
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var te *ToolkitError
	if errors.As(err, &te) {
		return te.Error()
	}

	return err.Error()
}

// GetErrorContext extracts context information from a ToolkitError, suitable
// for passing to a structured logger.
func GetErrorContext(err error) map[string]interface{} {
	var te *ToolkitError
	if errors.As(err, &te) {
		context := make(map[string]interface{})
		for k, v := range te.Context {
			context[k] = v
		}
		if te.Component != "" {
			context["component"] = te.Component
		}
		if te.FilePath != "" {
			context["file"] = te.FilePath
		}
		context["type"] = string(te.Type)
		context["code"] = te.Code
		context["recoverable"] = te.Recoverable
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

// ExtractCause returns the innermost error that is not a ToolkitError, or the
// innermost ToolkitError when the chain ends in one.
func ExtractCause(err error) error {
	for err != nil {
		te, ok := err.(*ToolkitError)
		if !ok {
			return err
		}
		if te.Cause == nil {
			return te
		}
		err = te.Cause
	}
	return nil
}

// HasErrorCode checks if any ToolkitError in the chain has the given code.
func HasErrorCode(err error, code string) bool {
	for err != nil {
		if te, ok := err.(*ToolkitError); ok && te.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
