package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/xiv-cac/cac/internal/cacerr"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // codec, validation or scenario failure
	ExitCommandError = 2 // bad path, flag, argument or catalogue
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not
// an ExitError exit with ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope every command writes in json mode.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError is the error half of a CLIResponse.
type CLIError struct {
	Code    string      `json:"code"` // E001..E030
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// textReport is a command result that prints itself in text mode.
type textReport interface {
	writeText(w io.Writer) error
}

// OutputFormatter writes command results either as text or as a
// CLIResponse, and turns codec and loader errors into exit codes.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose lines; Writer when nil
	Verbose   bool
}

func (f *OutputFormatter) isJSON() bool {
	return f.Format == "json"
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}

func (f *OutputFormatter) text(data interface{}) error {
	if r, ok := data.(textReport); ok {
		return r.writeText(f.Writer)
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Success writes a command result.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	return f.text(data)
}

// Partial writes a result whose inputs did not all pass, such as a
// validate run over several files, and returns an ExitFailure.
func (f *OutputFormatter) Partial(data interface{}, code, message string) error {
	var err error
	if f.isJSON() {
		err = f.encode(CLIResponse{
			Status: "error",
			Data:   data,
			Error:  &CLIError{Code: code, Message: message},
		})
	} else {
		err = f.text(data)
	}
	if err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message))
}

// Error writes a bare error.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail writes err under its CLI error code and returns the ExitError the
// command should return. Catalogue load problems exit with
// ExitCommandError; codec and macro errors exit with ExitFailure.
func (f *OutputFormatter) Fail(err error) error {
	code := MapErrorCode(err)
	message := err.Error()
	exit := ExitFailure
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		message = loadErr.Message
		exit = ExitCommandError
	}
	_ = f.Error(code, message, errorDetails(err))
	return WrapExitError(exit, code, err)
}

// Reject writes a bad-argument error and returns an ExitCommandError.
func (f *OutputFormatter) Reject(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	_ = f.Error(ErrCodeInvalidInput, msg, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeInvalidInput, msg))
}

// errorDetails returns the record problems of a catalogue load error, or
// the offending input of a codec error.
func errorDetails(err error) interface{} {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && len(loadErr.Errors) > 0 {
		return loadErr.Errors
	}
	if input := cacerr.InputOf(err); input != "" {
		return map[string]string{"input": input}
	}
	return nil
}

// Logf writes a diagnostic line when verbose. It goes to ErrWriter so json
// output stays parseable.
func (f *OutputFormatter) Logf(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
