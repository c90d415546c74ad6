package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// SyncError creates template-sync errors. The operation is folded into the
// code, e.g. SyncError("COPY_FILE", ...) has code ERR_SYNC_COPY_FILE.
func SyncError(operation, message string, cause error) *ToolkitError {
	code := fmt.Sprintf("ERR_SYNC_%s", operation)
	return WrapIO(cause, code, fmt.Sprintf("sync %s failed: %s", operation, message)).
		WithComponent("sync")
}

// FileOperationError creates file operation errors. Permission and
// not-exist causes get their dedicated codes so callers can match on them.
func FileOperationError(operation, filePath, message string, cause error) *ToolkitError {
	code := fmt.Sprintf("ERR_FILE_%s", operation)
	switch {
	case errors.Is(cause, fs.ErrPermission):
		code = ErrCodePermissionDenied
	case errors.Is(cause, fs.ErrNotExist):
		code = ErrCodeFileNotFound
	}

	return WrapIO(cause, code, fmt.Sprintf("%s %s: %s", operation, filePath, message)).
		WithFile(filePath).
		WithContext("operation", operation)
}

// ConfigurationError creates configuration-related errors.
func ConfigurationError(setting, message string, value interface{}) *ToolkitError {
	return NewConfigError(
		ErrCodeConfigInvalid,
		fmt.Sprintf("invalid configuration for %s: %s", setting, message),
	).WithContext("setting", setting).WithContext("value", value)
}

// InvalidPathError reports a path setting that failed validation.
func InvalidPathError(setting, path string, cause error) *ToolkitError {
	err := &ToolkitError{
		Type:        ErrorTypeConfig,
		Code:        ErrCodeInvalidPath,
		Message:     "invalid path for " + setting,
		Cause:       cause,
		FilePath:    path,
		Recoverable: true,
	}
	return err.WithContext("setting", setting)
}

// UnknownCommandError is returned when the CLI is invoked with a sub-command
// it does not know.
func UnknownCommandError(command string) *ToolkitError {
	return NewValidationError(
		ErrCodeUnknownCommand,
		fmt.Sprintf("unknown command: %s", command),
	).WithComponent("cli").WithContext("command", command)
}

// CLIError creates CLI command errors with user-friendly messages.
func CLIError(command, message string, cause error) *ToolkitError {
	return &ToolkitError{
		Type:        ErrorTypeValidation,
		Code:        fmt.Sprintf("ERR_CLI_%s", command),
		Message:     fmt.Sprintf("command '%s' failed: %s", command, message),
		Cause:       cause,
		Component:   "cli",
		Recoverable: true,
	}
}
