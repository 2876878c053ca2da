// Package macro turns a crafting flow into game-client macro text and back.
//
// A flow is an ordered list of catalogue records. Build splits it into
// macros that respect the client's line limit, each ending with an echo line
// that tells the player to start the next macro or that the craft is done.
// Parse recovers action names from pasted macro text so it can be compressed
// into a code.
package macro

import (
	"fmt"
	"strings"

	"github.com/xiv-cac/cac/internal/registry"
)

// MaxLines is the number of lines the game client accepts in one macro.
const MaxLines = 15

// IndexPlaceholder is replaced by the 1-based macro number in Settings.Transition.
const IndexPlaceholder = "#{index}"

const lineSep = "\r\n"

// Line renders one action as a macro command.
func Line(a registry.Action, lang registry.Language) string {
	return fmt.Sprintf("/ac \"%s\" <wait.%d>", a.Name(lang), a.WaitTime)
}

// Build renders actions as macros of at most MaxLines lines each. Every macro
// but the last ends with the transition echo; the last ends with the ending
// echo. An empty flow yields no macros.
func Build(actions []registry.Action, s Settings) []string {
	lines := make([]string, len(actions))
	for i, a := range actions {
		lines[i] = Line(a, s.Language)
	}

	var header []string
	if s.Macrolock {
		header = append(header, "/macrolock")
	}
	// One line is always reserved for the footer.
	per := MaxLines - len(header) - 1

	var macros []string
	for start := 0; start < len(lines); start += per {
		end := min(start+per, len(lines))

		body := make([]string, 0, MaxLines)
		body = append(body, header...)
		body = append(body, lines[start:end]...)
		if end < len(lines) {
			body = append(body, strings.Replace(s.Transition, IndexPlaceholder, fmt.Sprint(len(macros)+1), 1))
		} else {
			body = append(body, s.Ending)
		}
		macros = append(macros, strings.Join(body, lineSep))
	}
	return macros
}

// Summary totals a flow.
type Summary struct {
	Actions     int `json:"actions"`
	WaitSeconds int `json:"wait_seconds"`
}

// Summarize counts the actions in a flow and the seconds its macros wait.
func Summarize(actions []registry.Action) Summary {
	s := Summary{Actions: len(actions)}
	for _, a := range actions {
		s.WaitSeconds += a.WaitTime
	}
	return s
}
