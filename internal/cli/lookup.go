package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiv-cac/cac/internal/cacerr"
	"github.com/xiv-cac/cac/internal/macro"
)

// LookupResult is the JSON payload of the lookup command.
type LookupResult struct {
	GameID     int      `json:"game_id"`
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Sheet      string   `json:"sheet"`
	Signatures []string `json:"signatures"`
	WaitTime   int      `json:"wait_time"`
	IconURL    string   `json:"icon_url"`
}

func (r LookupResult) writeText(w io.Writer) error {
	fmt.Fprintf(w, "%s (id %d, %s)\n", r.Name, r.ID, r.Sheet)
	fmt.Fprintf(w, "  wait: %ds\n", r.WaitTime)
	if len(r.Signatures) > 0 {
		fmt.Fprintf(w, "  signatures: %s\n", strings.Join(r.Signatures, ", "))
	}
	_, err := fmt.Fprintf(w, "  icon: %s\n", r.IconURL)
	return err
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <game-id>",
		Short: "Find the action a game ID belongs to",
		Long: `Resolve a numeric game ID (from either the Action or the
CraftAction sheet) to its catalogue record.

Examples:
  cac lookup 100387
  cac lookup 4574 --lang fr --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(rootOpts, args[0], cmd)
		},
	}
}

func runLookup(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	gameID, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return formatter.Reject("game id must be an integer: %q", arg)
	}
	lang, err := opts.Lang()
	if err != nil {
		return formatter.Reject("%v", err)
	}
	codec, err := opts.Codec()
	if err != nil {
		return formatter.Fail(err)
	}

	a, ok := codec.LookupByGameID(gameID)
	if !ok {
		return formatter.Fail(cacerr.New(cacerr.CodeUnresolvedReference, gameID, "no action with game id %d", gameID))
	}

	result := LookupResult{
		GameID:     gameID,
		ID:         int(a.ID),
		Name:       a.Name(lang),
		Sheet:      string(a.Sheet),
		Signatures: a.Signatures,
		WaitTime:   a.WaitTime,
		IconURL:    macro.IconURL(a.Icon),
	}

	return formatter.Success(result)
}
