package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiv-cac/cac/internal/cac"
	"github.com/xiv-cac/cac/internal/registry"
	"github.com/xiv-cac/cac/internal/testutil"
)

// rawResponse is CLIResponse with the payload left undecoded.
type rawResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

func run(t *testing.T, newCmd func(*RootOptions) *cobra.Command, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func decodeResponse(t *testing.T, out string, data interface{}) rawResponse {
	t.Helper()
	var resp rawResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"names", []string{"Great Strides", "Manipulation"}, "1v2bYA"},
		{"names in another language", []string{"グレートストライド"}, "1v1bgA"},
		{"game ids", []string{"--kind", "id", "260", "4574"}, "1v2bYA"},
		{"signatures", []string{"--kind", "signature", "reflect", "manipulation", "greatStrides"}, "1v5byII"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, NewCompressCommand, &RootOptions{Format: "text"}, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestCompressJSON(t *testing.T) {
	out, err := run(t, NewCompressCommand, &RootOptions{Format: "json"}, "--kind", "id", "260", "4574")
	require.NoError(t, err)

	var result CompressResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, CompressResult{Code: "1v2bYA", Kind: "id", Count: 2}, result)
}

func TestCompressLanguageFlag(t *testing.T) {
	out, err := execute(t, "compress", "--lang", "ja", "グレートストライド")
	require.NoError(t, err)
	assert.Equal(t, "1v1bgA\n", out)

	_, err = execute(t, "compress", "--lang", "en", "グレートストライド")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCompressUnresolved(t *testing.T) {
	out, err := run(t, NewCompressCommand, &RootOptions{Format: "json"}, "Great Strides", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeUnresolvedReference)

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUnresolvedReference, resp.Error.Code)
	assert.Equal(t, map[string]interface{}{"input": "nope"}, resp.Error.Details)
}

func TestCompressBadKind(t *testing.T) {
	out, err := run(t, NewCompressCommand, &RootOptions{Format: "text"}, "--kind", "icon", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]")
}

func TestDecompress(t *testing.T) {
	out, err := run(t, NewDecompressCommand, &RootOptions{Format: "text"}, "1v2bYA")
	require.NoError(t, err)
	assert.Equal(t, " 1. Great Strides\n 2. Manipulation\n", out)
}

func TestDecompressJSON(t *testing.T) {
	out, err := run(t, NewDecompressCommand, &RootOptions{Format: "json", Language: "fr"}, "1v5byII")
	require.NoError(t, err)

	var result DecompressResult
	decodeResponse(t, out, &result)
	assert.Equal(t, "1v5byII", result.Code)
	assert.Equal(t, []ActionView{
		{ID: 25, Name: "Véritable valeur", WaitTime: 3},
		{ID: 2, Name: "Manipulation", WaitTime: 2},
		{ID: 1, Name: "Grands progrès", WaitTime: 2},
	}, result.Actions)
}

func TestDecompressErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"unknown identifier", "1v6blA", ErrCodeUnknownIdentifier},
		{"not a code", "abc", ErrCodeInvalidCodeFormat},
		{"zero width", "1v0b", ErrCodeInvalidBitWidth},
		{"oversized width", "1v33bAA", ErrCodeInvalidBitWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, NewDecompressCommand, &RootOptions{Format: "text"}, tt.code)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.want+"]")
		})
	}
}

func TestInspect(t *testing.T) {
	out, err := run(t, NewInspectCommand, &RootOptions{Format: "json"}, "1v2bYA")
	require.NoError(t, err)

	var result InspectResult
	decodeResponse(t, out, &result)
	assert.Equal(t, InspectResult{Version: 1, BitWidth: 2, IDs: []int{1, 2}, Current: true}, result)
}

func TestInspectEmptyCode(t *testing.T) {
	out, err := run(t, NewInspectCommand, &RootOptions{Format: "json"}, "1v1b")
	require.NoError(t, err)
	assert.Contains(t, out, `"ids":[]`)
}

func TestInspectOtherVersion(t *testing.T) {
	out, err := run(t, NewInspectCommand, &RootOptions{Format: "text"}, "2v2bYA")
	require.NoError(t, err)
	assert.Contains(t, out, "version:   2")
	assert.Contains(t, out, "not the current format version")
	assert.Contains(t, out, "ids:       [1 2]")
}

func TestLookup(t *testing.T) {
	out, err := run(t, NewLookupCommand, &RootOptions{Format: "text"}, "100387")
	require.NoError(t, err)
	assert.Contains(t, out, "Reflect (id 25, CraftAction)")
	assert.Contains(t, out, "wait: 3s")
}

func TestLookupJSON(t *testing.T) {
	out, err := run(t, NewLookupCommand, &RootOptions{Format: "json", Language: "ja"}, "4574")
	require.NoError(t, err)

	var result LookupResult
	decodeResponse(t, out, &result)
	assert.Equal(t, 2, result.ID)
	assert.Equal(t, 4574, result.GameID)
	assert.Equal(t, "マニピュレーション", result.Name)
	assert.Equal(t, []string{"manipulation"}, result.Signatures)
	assert.Equal(t, "https://icon.nbbjack.com/001000/001985.png", result.IconURL)
}

func TestLookupErrors(t *testing.T) {
	_, err := run(t, NewLookupCommand, &RootOptions{Format: "text"}, "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, err := run(t, NewLookupCommand, &RootOptions{Format: "text"}, "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeUnresolvedReference+"]")
}

func TestMacro(t *testing.T) {
	out, err := run(t, NewMacroCommand, &RootOptions{Format: "text"}, "1v2bYA")
	require.NoError(t, err)
	assert.Equal(t,
		"# Macro 1\n/ac \"Great Strides\" <wait.2>\r\n/ac \"Manipulation\" <wait.2>\r\n/e Craft Done! <se.1>\n",
		out)
}

func TestMacroJSON(t *testing.T) {
	opts := &RootOptions{Format: "json", ShareURL: "https://cac.example.com/"}
	out, err := run(t, NewMacroCommand, opts, "--macrolock", "1v4bEjRWeJq83vA")
	require.NoError(t, err)

	var result MacroResult
	decodeResponse(t, out, &result)
	assert.Equal(t, 15, result.Actions)
	assert.Equal(t, 38, result.WaitSeconds)
	assert.Equal(t, "https://cac.example.com/?s=1v4bEjRWeJq83vA", result.ShareURL)
	require.Len(t, result.Macros, 2)
	for _, m := range result.Macros {
		assert.True(t, strings.HasPrefix(m, "/macrolock\r\n"))
	}
	assert.True(t, strings.HasSuffix(result.Macros[0], "/e Macro 1 ends! <se.2>"))
	assert.True(t, strings.HasSuffix(result.Macros[1], "/e Craft Done! <se.1>"))
}

func TestMacroSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: ja\nending: \"/e done\"\n"), 0644))

	out, err := run(t, NewMacroCommand, &RootOptions{Format: "text"}, "--settings", path, "1v2bYA")
	require.NoError(t, err)
	assert.Contains(t, out, `/ac "マニピュレーション" <wait.2>`)
	assert.Contains(t, out, "/e done")
	assert.NotContains(t, out, "/macrolock")
}

func TestMacroSettingsFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("macrolock: true\n"), 0644))

	clearEnv(t)
	t.Setenv("CAC_MACRO_SETTINGS", path)
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"macro", "--lang", "de", "1v1bgA"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "/macrolock\r\n")
	assert.Contains(t, buf.String(), `/ac "Große Schritte" <wait.2>`)
}

func TestMacroBadSettings(t *testing.T) {
	_, err := run(t, NewMacroCommand, &RootOptions{Format: "text"}, "--settings", "/nonexistent/macro.yaml", "1v2bYA")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMacroMarkdown(t *testing.T) {
	opts := &RootOptions{Format: "text", ShareURL: "https://cac.example.com"}
	out, err := run(t, NewMacroCommand, opts, "--markdown", "1v2bYA")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "### My Craft Flow\r\n"))
	assert.Contains(t, out, "* CAC: 1v2bYA\r\n")
	assert.Contains(t, out, "* SHARE: <https://cac.example.com/?s=1v2bYA>\r\n")
	assert.Contains(t, out, "#### Macro #1\r\n")
}

func TestMacroMarkdownJSON(t *testing.T) {
	opts := &RootOptions{Format: "json", ShareURL: "https://cac.example.com"}
	out, err := run(t, NewMacroCommand, opts, "--markdown", "1v2bYA")
	require.NoError(t, err)

	var result MacroResult
	decodeResponse(t, out, &result)
	assert.True(t, strings.HasPrefix(result.Markdown, "### My Craft Flow\r\n"))
	assert.Contains(t, result.Markdown, "* CAC: 1v2bYA\r\n")
	require.Len(t, result.Macros, 1)

	out, err = run(t, NewMacroCommand, &RootOptions{Format: "json"}, "1v2bYA")
	require.NoError(t, err)
	assert.NotContains(t, out, `"markdown"`)
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotation.txt")
	text := "/macrolock\r\n/ac \"Great Strides\" <wait.2>\r\n/ac Manipulation <wait.2>\r\n/e Craft Done! <se.1>\r\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))

	out, err := run(t, NewImportCommand, &RootOptions{Format: "text"}, path)
	require.NoError(t, err)
	assert.Equal(t, "1v2bYA\n", out)
}

func TestImportStdin(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewImportCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("/ac 真価 <wait.3>\n/ac グレートストライド\n"))
	cmd.SetArgs([]string{"-"})
	require.NoError(t, cmd.Execute())

	var result ImportResult
	decodeResponse(t, buf.String(), &result)
	assert.Equal(t, []string{"真価", "グレートストライド"}, result.Names)

	d, err := cac.Default().Inspect(result.Code)
	require.NoError(t, err)
	assert.Equal(t, []int{25, 1}, d.IDs)
}

func TestImportErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("/e nothing here\n"), 0644))

	out, err := run(t, NewImportCommand, &RootOptions{Format: "text"}, path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNoActions+"]")

	_, err = run(t, NewImportCommand, &RootOptions{Format: "text"}, "/nonexistent/rotation.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalog(t *testing.T) {
	out, err := run(t, NewCatalogCommand, &RootOptions{Format: "text"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, registry.Default().Len()+1)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Great Strides")
}

func TestCatalogJSONSheetFilter(t *testing.T) {
	out, err := run(t, NewCatalogCommand, &RootOptions{Format: "json"}, "--sheet", "CraftAction")
	require.NoError(t, err)

	var entries []CatalogEntry
	decodeResponse(t, out, &entries)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, "CraftAction", e.Sheet)
	}

	_, err = run(t, NewCatalogCommand, &RootOptions{Format: "text"}, "--sheet", "Bogus")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCustomCatalog(t *testing.T) {
	catalog := testutil.WriteCatalog(t,
		testutil.Record{ID: 1, Name: "Alpha", GameIDs: []int{10}, WaitTime: 2},
		testutil.Record{ID: 3, Name: "Gamma", GameIDs: []int{30, 31}, WaitTime: 3},
	)

	out, err := run(t, NewCompressCommand, &RootOptions{Format: "text", Catalog: catalog}, "--kind", "id", "31", "10")
	require.NoError(t, err)
	assert.Equal(t, "1v2b0A\n", out)

	out, err = run(t, NewDecompressCommand, &RootOptions{Format: "text", Catalog: catalog}, "1v2b0A")
	require.NoError(t, err)
	assert.Equal(t, " 1. Gamma\n 2. Alpha\n", out)
}

func TestCatalogLoadErrors(t *testing.T) {
	_, err := run(t, NewInspectCommand, &RootOptions{Format: "text", Catalog: "/nonexistent/catalog.cue"}, "1v1b")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)

	bad := testutil.WriteCatalog(t,
		testutil.Record{ID: 1, Name: "Alpha", GameIDs: []int{10}},
		testutil.Record{ID: 2, Name: "Beta", GameIDs: []int{10}},
	)
	out, err := run(t, NewInspectCommand, &RootOptions{Format: "json", Catalog: bad}, "1v1b")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, out, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidCatalog, resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestMapErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeGeneric, MapErrorCode(os.ErrNotExist))
	assert.Equal(t, ErrCodeNotFound, MapErrorCode(&LoadError{Code: ErrCodeNotFound}))
}
