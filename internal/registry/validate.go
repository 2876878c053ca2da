package registry

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Catalogue validation error codes (E200-E299)
const (
	// Load errors (E200)
	ErrCatalogSyntax = "E200" // catalogue does not compile
	ErrSchema        = "E201" // record does not satisfy #Action

	// Record errors (E202-E209)
	ErrInvalidID     = "E202" // identifier is not a positive integer
	ErrDuplicateID   = "E203" // identifier used twice
	ErrMissingName   = "E204" // a supported language has no name
	ErrNameNotNFC    = "E205" // name is not NFC-normalized
	ErrInvalidSheet  = "E206" // unknown sheet
	ErrNoGameIDs     = "E207" // no game IDs, or a non-positive one
	ErrNegativeWait  = "E208" // negative wait time
	ErrEmptyAlias    = "E209" // empty signature

	// Cross-record errors (E210-E219)
	ErrDuplicateGameID    = "E210" // game ID claimed by two records
	ErrDuplicateSignature = "E211" // signature claimed by two records
	ErrDuplicateName      = "E212" // (language, name) claimed by two records
)

// ValidationError is one catalogue problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every problem found in a catalogue.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("invalid catalogue (%d error(s)): %s", len(es), strings.Join(msgs, "; "))
}

// validateAction checks one record in isolation.
// Returns all errors found (does not fail-fast).
func validateAction(a Action) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("actions.%d", a.ID)

	if a.ID <= 0 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "identifier must be a positive integer",
			Code:    ErrInvalidID,
		})
	}

	for _, lang := range Languages {
		name := a.Names[lang]
		switch {
		case strings.TrimSpace(name) == "":
			errs = append(errs, ValidationError{
				Field:   field + ".names." + string(lang),
				Message: "name is required",
				Code:    ErrMissingName,
			})
		case !norm.NFC.IsNormalString(name):
			errs = append(errs, ValidationError{
				Field:   field + ".names." + string(lang),
				Message: fmt.Sprintf("name %q is not NFC-normalized", name),
				Code:    ErrNameNotNFC,
			})
		}
	}

	if !a.Sheet.Valid() {
		errs = append(errs, ValidationError{
			Field:   field + ".sheet",
			Message: fmt.Sprintf("unknown sheet %q", a.Sheet),
			Code:    ErrInvalidSheet,
		})
	}

	if len(a.GameIDs) == 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".ids",
			Message: "at least one game ID is required",
			Code:    ErrNoGameIDs,
		})
	}
	for i, gid := range a.GameIDs {
		if gid <= 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.ids[%d]", field, i),
				Message: fmt.Sprintf("game ID %d must be positive", gid),
				Code:    ErrNoGameIDs,
			})
		}
	}

	for i, sig := range a.Signatures {
		if sig == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.signatures[%d]", field, i),
				Message: "signature must be non-empty",
				Code:    ErrEmptyAlias,
			})
		}
	}

	if a.WaitTime < 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".wait_time",
			Message: fmt.Sprintf("wait time %d must be non-negative", a.WaitTime),
			Code:    ErrNegativeWait,
		})
	}

	return errs
}
