package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xiv-cac/cac/internal/cac"
)

// CompressOptions holds flags for the compress command.
type CompressOptions struct {
	*RootOptions
	Kind string // id | name | signature
}

// CompressResult is the JSON payload of the compress command.
type CompressResult struct {
	Code  string `json:"code"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

func (r CompressResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Code)
	return err
}

// NewCompressCommand creates the compress command.
func NewCompressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compress <ref>...",
		Short: "Compress action references into a code",
		Long: `Compress a rotation into a CAC code.

References are display names by default. Names match in any catalogue
language unless --lang is given on the command line. Use --kind id for
numeric game IDs and --kind signature for signatures.

Examples:
  cac compress "Great Strides" Manipulation
  cac compress --kind id 260 4574
  cac compress --lang ja グレートストライド`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", string(cac.KindName), "reference kind (id|name|signature)")

	return cmd
}

func runCompress(opts *CompressOptions, refs []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	kind, err := cac.ParseKind(opts.Kind)
	if err != nil {
		return formatter.Reject("%v", err)
	}

	codec, err := opts.Codec()
	if err != nil {
		return formatter.Fail(err)
	}

	var code string
	if kind == cac.KindName && cmd.Flags().Changed("lang") {
		lang, err := opts.Lang()
		if err != nil {
			return formatter.Reject("%v", err)
		}
		formatter.Logf("Matching names in %s", lang)
		code, err = codec.CompressNames(lang, refs)
		if err != nil {
			return formatter.Fail(err)
		}
	} else {
		code, err = codec.Compress(kind, refs)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	return formatter.Success(CompressResult{Code: code, Kind: string(kind), Count: len(refs)})
}
