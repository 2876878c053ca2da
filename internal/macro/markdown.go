package macro

import (
	"fmt"
	"strings"
)

const iconCDN = "https://icon.nbbjack.com/"

// ShareURL links to the web viewer for code.
func ShareURL(base, code string) string {
	return strings.TrimRight(base, "/") + "/?s=" + code
}

// IconURL returns the CDN address of an action icon. Icons are grouped in
// folders of one thousand.
func IconURL(icon int) string {
	id := fmt.Sprintf("%06d", icon)
	return iconCDN + id[:3] + "000/" + id + ".png"
}

// Markdown renders a flow for pasting into chat or a forum post. The share
// line is written only when shareBase is set.
func Markdown(code, shareBase string, macros []string) string {
	var b strings.Builder
	b.WriteString("### My Craft Flow" + lineSep + lineSep)
	b.WriteString("* CAC: " + code + lineSep)
	if shareBase != "" {
		b.WriteString("* SHARE: <" + ShareURL(shareBase, code) + ">" + lineSep)
	}
	b.WriteString(lineSep)
	for i, m := range macros {
		fmt.Fprintf(&b, "#### Macro #%d%s", i+1, lineSep)
		b.WriteString("```" + lineSep + m + lineSep + "```" + lineSep + lineSep)
	}
	return b.String()
}
