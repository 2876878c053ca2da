package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiv-cac/cac/internal/registry"
)

// FileValidation holds the problems found in one catalogue file.
type FileValidation struct {
	File    string                    `json:"file"`
	Actions int                       `json:"actions"`
	Errors  registry.ValidationErrors `json:"errors,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

func (r ValidationResult) writeText(w io.Writer) error {
	if r.Valid {
		total := 0
		for _, f := range r.Files {
			total += f.Actions
		}
		_, err := fmt.Fprintf(w, "✓ All catalogues valid (%d action(s))\n", total)
		return err
	}

	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, f := range r.Files {
		if len(f.Errors) == 0 {
			continue
		}
		fmt.Fprintln(w, f.File)
		for _, e := range f.Errors {
			fmt.Fprintf(w, "  %s %s: %s\n", e.Code, e.Field, e.Message)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (r ValidationResult) errorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalogue-file|dir>",
		Short: "Validate catalogue files",
		Long: `Validate CUE catalogue files against the action schema.

Checks every record in isolation (names in all languages, sheet, game
IDs, wait time) and across records (duplicate identifiers, game IDs,
signatures and names). All problems are reported, not just the first.
A directory is searched recursively for .cue files.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	files, err := catalogueFiles(path)
	if err != nil {
		return formatter.Fail(err)
	}

	formatter.Logf("Found %d CUE file(s) in %s", len(files), path)

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	for _, file := range files {
		formatter.Logf("Validating catalogue: %s", file)
		fv := ValidateCatalogFile(file)
		if len(fv.Errors) > 0 {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if !result.Valid {
		return formatter.Partial(result, ErrCodeInvalidCatalog,
			fmt.Sprintf("validation failed with %d error(s)", result.errorCount()))
	}
	return formatter.Success(result)
}

// catalogueFiles returns path itself, or the .cue files below it when it is
// a directory.
func catalogueFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := FindCUEFiles(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
	}
	return files, nil
}

// ValidateCatalogFile checks one catalogue file and returns every problem
// found. Schema problems and registry problems are reported together.
func ValidateCatalogFile(path string) FileValidation {
	fv := FileValidation{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		fv.Errors = registry.ValidationErrors{{Field: "file", Message: err.Error(), Code: ErrCodeLoadFailed}}
		return fv
	}

	actions, errs := registry.Decode(data, path)
	fv.Actions = len(actions)
	if _, err := registry.New(actions); err != nil {
		var verrs registry.ValidationErrors
		if errors.As(err, &verrs) {
			errs = append(errs, verrs...)
		} else {
			errs = append(errs, registry.ValidationError{Field: "catalogue", Message: err.Error(), Code: ErrCodeGeneric})
		}
	}
	fv.Errors = errs
	return fv
}
