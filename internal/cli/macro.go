package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiv-cac/cac/internal/macro"
)

// MacroOptions holds flags for the macro command.
type MacroOptions struct {
	*RootOptions
	Macrolock bool
	Settings  string // YAML settings file; overrides CAC_MACRO_SETTINGS
	Markdown  bool
}

// MacroResult is the JSON payload of the macro command.
type MacroResult struct {
	Code        string   `json:"code"`
	Macros      []string `json:"macros"`
	Actions     int      `json:"actions"`
	WaitSeconds int      `json:"wait_seconds"`
	ShareURL    string   `json:"share_url,omitempty"`
	Markdown    string   `json:"markdown,omitempty"` // set by --markdown
}

func (r MacroResult) writeText(w io.Writer) error {
	if r.Markdown != "" {
		_, err := fmt.Fprint(w, r.Markdown)
		return err
	}
	for i, m := range r.Macros {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "# Macro %d\n%s\n", i+1, m); err != nil {
			return err
		}
	}
	return nil
}

// NewMacroCommand creates the macro command.
func NewMacroCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MacroOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "macro <code>",
		Short: "Render a code as in-game macros",
		Long: `Expand a code and render it as in-game macros of at most 15 lines.

Each macro but the last ends with the transition echo; the last ends
with the ending echo. Both can be changed in a YAML settings file:

  language: ja
  macrolock: true
  transition: "/e Macro #{index} ends! <se.2>"
  ending: "/e Craft Done! <se.1>"

Examples:
  cac macro 1v4bEjRWeJq83vA --macrolock
  cac macro 1v2bYA --markdown
  cac macro 1v2bYA --settings macro.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMacro(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Macrolock, "macrolock", false, "start every macro with /macrolock")
	cmd.Flags().StringVar(&opts.Settings, "settings", "", "YAML macro settings file")
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "render a Markdown post (the markdown field in json output)")

	return cmd
}

// settings resolves the effective macro settings: file first, then flags
// given on the command line.
func (o *MacroOptions) settings(cmd *cobra.Command) (macro.Settings, error) {
	path := o.Settings
	if path == "" {
		path = o.MacroSettings
	}

	s := macro.DefaultSettings()
	if path != "" {
		loaded, err := macro.LoadSettings(path)
		if err != nil {
			return macro.Settings{}, err
		}
		s = loaded
	}

	if path == "" || cmd.Flags().Changed("lang") {
		lang, err := o.Lang()
		if err != nil {
			return macro.Settings{}, err
		}
		s.Language = lang
	}
	if cmd.Flags().Changed("macrolock") {
		s.Macrolock = o.Macrolock
	}
	return s, nil
}

func runMacro(opts *MacroOptions, code string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	settings, err := opts.settings(cmd)
	if err != nil {
		return formatter.Reject("%v", err)
	}
	codec, err := opts.Codec()
	if err != nil {
		return formatter.Fail(err)
	}

	actions, err := codec.Decompress(code)
	if err != nil {
		return formatter.Fail(err)
	}

	macros := macro.Build(actions, settings)
	sum := macro.Summarize(actions)
	formatter.Logf("Rendered %d action(s) into %d macro(s), %ds of waits", sum.Actions, len(macros), sum.WaitSeconds)

	result := MacroResult{
		Code:        code,
		Macros:      macros,
		Actions:     sum.Actions,
		WaitSeconds: sum.WaitSeconds,
	}
	if opts.ShareURL != "" {
		result.ShareURL = macro.ShareURL(opts.ShareURL, code)
	}
	if opts.Markdown {
		result.Markdown = macro.Markdown(code, opts.ShareURL, macros)
	}
	return formatter.Success(result)
}

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	Code  string   `json:"code"`
	Names []string `json:"names"`
}

func (r ImportResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Code)
	return err
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <macro-file|->",
		Short: "Turn existing macro text into a code",
		Long: `Read macro text, pick out its /ac lines, and compress the action
names into a code. Names match in any catalogue language. Use - to
read from standard input.

Examples:
  cac import rotation.txt
  pbpaste | cac import -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return formatter.Reject("failed to read macro text: %v", err)
	}

	codec, err := opts.Codec()
	if err != nil {
		return formatter.Fail(err)
	}

	text := string(data)
	code, err := macro.Import(codec, text)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(ImportResult{Code: code, Names: macro.Parse(text)})
}
