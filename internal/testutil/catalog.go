// Package testutil holds helpers shared by tests and the scenario harness.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Record is a minimal catalogue entry for test catalogues. Every language
// gets the same name.
type Record struct {
	ID         int
	Name       string
	GameIDs    []int
	Signatures []string
	WaitTime   int
}

// CatalogCUE renders records as a CUE catalogue document.
func CatalogCUE(records ...Record) string {
	var b strings.Builder
	b.WriteString("actions: {\n")
	for _, r := range records {
		fmt.Fprintf(&b, "\t%q: {\n", fmt.Sprint(r.ID))
		fmt.Fprintf(&b, "\t\tnames: {zh: %q, tc: %q, ko: %q, ja: %q, en: %q, de: %q, fr: %q}\n",
			r.Name, r.Name, r.Name, r.Name, r.Name, r.Name, r.Name)
		b.WriteString("\t\tsheet: \"Action\"\n")
		fmt.Fprintf(&b, "\t\tids: %s\n", cueList(r.GameIDs, func(v int) string { return fmt.Sprint(v) }))
		fmt.Fprintf(&b, "\t\tsignatures: %s\n", cueList(r.Signatures, func(v string) string { return fmt.Sprintf("%q", v) }))
		fmt.Fprintf(&b, "\t\twait_time: %d\n", r.WaitTime)
		b.WriteString("\t\ticon: 0\n")
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteCatalog writes records to catalog.cue in a fresh temp directory and
// returns the file path.
func WriteCatalog(t testing.TB, records ...Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.cue")
	if err := os.WriteFile(path, []byte(CatalogCUE(records...)), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func cueList[T any](vs []T, format func(T) string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
