package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xiv-cac/cac/internal/registry"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Sheet string // only list actions from this sheet
}

// CatalogEntry is one row of the catalog listing.
type CatalogEntry struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Sheet      string   `json:"sheet"`
	GameIDs    []int    `json:"game_ids"`
	Signatures []string `json:"signatures"`
	WaitTime   int      `json:"wait_time"`
}

// Catalog is the catalog listing in identifier order.
type Catalog []CatalogEntry

func (c Catalog) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSHEET\tWAIT\tSIGNATURES")
	for _, e := range c {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%ds\t%s\n", e.ID, e.Name, e.Sheet, e.WaitTime, strings.Join(e.Signatures, ","))
	}
	return tw.Flush()
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the actions in the catalogue",
		Long: `List every action in the active catalogue in identifier order.

Examples:
  cac catalog --lang fr
  cac catalog --sheet CraftAction --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "only list actions from this sheet (Action|CraftAction)")

	return cmd
}

func runCatalog(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sheet := registry.Sheet(opts.Sheet)
	if sheet != "" && !sheet.Valid() {
		return formatter.Reject("invalid sheet %q: must be %s or %s", opts.Sheet, registry.SheetAction, registry.SheetCraftAction)
	}
	lang, err := opts.Lang()
	if err != nil {
		return formatter.Reject("%v", err)
	}
	codec, err := opts.Codec()
	if err != nil {
		return formatter.Fail(err)
	}

	entries := Catalog{}
	for _, a := range codec.Registry().All() {
		if sheet != "" && a.Sheet != sheet {
			continue
		}
		entries = append(entries, CatalogEntry{
			ID:         int(a.ID),
			Name:       a.Name(lang),
			Sheet:      string(a.Sheet),
			GameIDs:    a.GameIDs,
			Signatures: a.Signatures,
			WaitTime:   a.WaitTime,
		})
	}

	return formatter.Success(entries)
}
