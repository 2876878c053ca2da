package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xiv-cac/cac/internal/cacerr"
	"github.com/xiv-cac/cac/internal/macro"
	"github.com/xiv-cac/cac/internal/registry"
)

// LoadError represents an error that occurred while loading a catalogue.
type LoadError struct {
	Code    string
	Message string
	Errors  registry.ValidationErrors // record problems, if any
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadRegistry loads the catalogue at path, or the embedded catalogue when
// path is empty.
func LoadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalogue not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalogue: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalogue is a directory: %s", path)}
	}

	reg, err := registry.LoadFile(path)
	if err != nil {
		var verrs registry.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, &LoadError{
				Code:    ErrCodeInvalidCatalog,
				Message: fmt.Sprintf("catalogue %s has %d problem(s)", path, len(verrs)),
				Errors:  verrs,
			}
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}
	return reg, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeScanError      = "E002" // Directory scan error
	ErrCodeNoFiles        = "E003" // No CUE files found
	ErrCodeLoadFailed     = "E004" // Catalogue read or compile failed
	ErrCodeNotFound       = "E005" // Path not found
	ErrCodeInvalidCatalog = "E006" // Catalogue records failed validation
	ErrCodeInvalidInput   = "E007" // Bad argument (language, game ID, kind)

	// Codec errors
	ErrCodeInvalidIdentifier   = "E020"
	ErrCodeInvalidCodeFormat   = "E021"
	ErrCodeInvalidVersion      = "E022"
	ErrCodeInvalidBitWidth     = "E023"
	ErrCodeUnresolvedReference = "E024"
	ErrCodeUnknownIdentifier   = "E025"
	ErrCodeNoActions           = "E026" // Macro text held no action lines

	ErrCodeTestFailed = "E030" // One or more scenarios failed
)

// MapErrorCode maps an error from the codec, the macro toolkit, or the
// loader to a CLI error code.
func MapErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	if errors.Is(err, macro.ErrNoActions) {
		return ErrCodeNoActions
	}

	code, ok := cacerr.CodeOf(err)
	if !ok {
		return ErrCodeGeneric
	}
	switch code {
	case cacerr.CodeInvalidIdentifier:
		return ErrCodeInvalidIdentifier
	case cacerr.CodeInvalidCodeFormat:
		return ErrCodeInvalidCodeFormat
	case cacerr.CodeInvalidVersion:
		return ErrCodeInvalidVersion
	case cacerr.CodeInvalidBitWidth:
		return ErrCodeInvalidBitWidth
	case cacerr.CodeUnresolvedReference:
		return ErrCodeUnresolvedReference
	case cacerr.CodeUnknownIdentifier:
		return ErrCodeUnknownIdentifier
	default:
		return ErrCodeGeneric
	}
}
