package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ActionView is one decoded action as printed by the CLI.
type ActionView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	WaitTime int    `json:"wait_time"`
}

// DecompressResult is the JSON payload of the decompress command.
type DecompressResult struct {
	Code    string       `json:"code"`
	Actions []ActionView `json:"actions"`
}

func (r DecompressResult) writeText(w io.Writer) error {
	for i, v := range r.Actions {
		if _, err := fmt.Fprintf(w, "%2d. %s\n", i+1, v.Name); err != nil {
			return err
		}
	}
	return nil
}

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Version  int   `json:"version"`
	BitWidth int   `json:"bit_width"`
	IDs      []int `json:"ids"`
	Current  bool  `json:"current"`
}

func (r InspectResult) writeText(w io.Writer) error {
	fmt.Fprintf(w, "version:   %d\n", r.Version)
	if !r.Current {
		fmt.Fprintln(w, "           (not the current format version)")
	}
	fmt.Fprintf(w, "bit width: %d\n", r.BitWidth)
	_, err := fmt.Fprintf(w, "ids:       %v\n", r.IDs)
	return err
}

// NewDecompressCommand creates the decompress command.
func NewDecompressCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decompress <code>",
		Short: "Expand a code into its actions",
		Long: `Expand a CAC code into the actions it encodes, in order.

Every identifier in the code must exist in the catalogue. Names are
printed in the configured language.

Examples:
  cac decompress 1v2bYA
  cac decompress 1v5byII --lang de --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompress(rootOpts, args[0], cmd)
		},
	}
}

func runDecompress(opts *RootOptions, code string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	lang, err := opts.Lang()
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

	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{ID: int(a.ID), Name: a.Name(lang), WaitTime: a.WaitTime}
	}

	return formatter.Success(DecompressResult{Code: code, Actions: views})
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <code>",
		Short: "Show the envelope fields of a code",
		Long: `Parse a CAC code and print its version, bit width and raw
identifiers without consulting the catalogue.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
}

func runInspect(opts *RootOptions, code string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	codec, err := opts.Codec()
	if err != nil {
		return formatter.Fail(err)
	}
	d, err := codec.Inspect(code)
	if err != nil {
		return formatter.Fail(err)
	}

	ids := d.IDs
	if ids == nil {
		ids = []int{}
	}
	result := InspectResult{Version: d.Version, BitWidth: d.BitWidth, IDs: ids, Current: d.Current()}

	return formatter.Success(result)
}
