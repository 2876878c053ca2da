package macro

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/xiv-cac/cac/internal/cac"
)

// ErrNoActions is returned by Import when the text holds no action commands.
var ErrNoActions = errors.New("no actions found in macro text")

// actionLine matches /ac, /action and the Chinese client's /技能, with a
// quoted or bare name and an optional wait.
var actionLine = regexp.MustCompile(`/(ac|action|技能)\s(?:"(.*?)"|(\S+))(?:\s?<wait\.\d+>)?`)

// Parse extracts action names from macro text, one per matching line, in
// order. Other lines (echoes, /macrolock, blanks) are skipped. Names are
// returned in NFC.
func Parse(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		m := actionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[2]
		if name == "" {
			name = m[3]
		}
		if name == "" {
			continue
		}
		names = append(names, norm.NFC.String(name))
	}
	return names
}

// Import parses macro text and compresses the names it finds, in any
// catalogue language, into a code.
func Import(c *cac.Codec, text string) (string, error) {
	names := Parse(text)
	if len(names) == 0 {
		return "", ErrNoActions
	}
	return c.Compress(cac.KindName, names)
}
