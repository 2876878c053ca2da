package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xiv-cac/cac/internal/cac"
	"github.com/xiv-cac/cac/internal/config"
	"github.com/xiv-cac/cac/internal/registry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Catalog  string // CUE catalogue file; empty means the embedded catalogue
	Language string // catalogue tag or BCP 47 tag

	// ShareURL and MacroSettings come from the environment only.
	ShareURL      string
	MacroSettings string

	codec *cac.Codec
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cac CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cac",
		Short: "cac - crafting action codes",
		Long: `Compress crafting rotations into short shareable codes and expand them back.

A code such as 1v2bYA packs canonical action identifiers at the smallest
bit width that fits the largest one. Environment variables CAC_LANGUAGE,
CAC_CATALOG, CAC_MACRO_SETTINGS, CAC_SHARE_URL and CAC_LOG_LEVEL set
defaults; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load()
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			opts.apply(cmd, cfg)
			setupLogging(cmd, opts, cfg)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "CUE catalogue file (default: embedded catalogue)")
	cmd.PersistentFlags().StringVar(&opts.Language, "lang", "", "language for names (zh, tc, ko, ja, en, de, fr or a BCP 47 tag)")

	cmd.AddCommand(NewCompressCommand(opts))
	cmd.AddCommand(NewDecompressCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewLookupCommand(opts))
	cmd.AddCommand(NewMacroCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// apply fills options the user did not set on the command line from cfg.
func (o *RootOptions) apply(cmd *cobra.Command, cfg config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("catalog") {
		o.Catalog = cfg.Catalog
	}
	if !flags.Changed("lang") {
		o.Language = cfg.Language
	}
	o.ShareURL = cfg.ShareURL
	o.MacroSettings = cfg.MacroSettings
}

func setupLogging(cmd *cobra.Command, opts *RootOptions, cfg config.Config) {
	level := cfg.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Codec returns the codec over the configured catalogue, loading it on
// first use.
func (o *RootOptions) Codec() (*cac.Codec, error) {
	if o.codec != nil {
		return o.codec, nil
	}
	reg, err := LoadRegistry(o.Catalog)
	if err != nil {
		return nil, err
	}
	o.codec = cac.New(reg)
	return o.codec, nil
}

// Lang returns the configured language, English when unset.
func (o *RootOptions) Lang() (registry.Language, error) {
	if o.Language == "" {
		return registry.English, nil
	}
	return registry.ParseLanguage(o.Language)
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
