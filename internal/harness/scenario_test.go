package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiv-cac/cac/internal/testutil"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: end_to_end
description: "Compress game IDs and expand the code"
flow:
  - invoke: compress
    args:
      kind: id
      refs: [260, 4574]
    expect:
      case: Success
      result:
        code: 1v2bYA
  - invoke: decompress
    args:
      code: 1v2bYA
assertions:
  - type: trace_order
    actions: [compress, decompress]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "end_to_end", scenario.Name)
	assert.Empty(t, scenario.Catalog)
	require.Len(t, scenario.Flow, 2)
	assert.Equal(t, OpCompress, scenario.Flow[0].Invoke)
	assert.Equal(t, []interface{}{260, 4574}, scenario.Flow[0].Args["refs"])
	require.NotNil(t, scenario.Flow[0].Expect)
	assert.Equal(t, "Success", scenario.Flow[0].Expect.Case)
	assert.Equal(t, "1v2bYA", scenario.Flow[0].Expect.Result["code"])
	assert.Nil(t, scenario.Flow[1].Expect)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, []string{"compress", "decompress"}, scenario.Assertions[0].Actions)
}

func TestLoadScenario_ResolvesCatalogPath(t *testing.T) {
	dir := t.TempDir()
	catalog := testutil.WriteCatalog(t, testutil.Record{ID: 1, Name: "Alpha", GameIDs: []int{10}})
	require.NoError(t, os.Rename(catalog, filepath.Join(dir, "catalog.cue")))

	path := writeScenario(t, dir, `
name: custom
description: "Custom catalogue"
catalog: catalog.cue
flow:
  - invoke: lookup
    args: { game_id: 10 }
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "catalog.cue"), scenario.Catalog)
}

func TestLoadScenarioWithBasePath(t *testing.T) {
	base := t.TempDir()
	catalog := testutil.WriteCatalog(t, testutil.Record{ID: 1, Name: "Alpha", GameIDs: []int{10}})
	require.NoError(t, os.Rename(catalog, filepath.Join(base, "alpha.cue")))

	path := writeScenario(t, t.TempDir(), `
name: custom
description: "Custom catalogue"
catalog: alpha.cue
flow:
  - invoke: lookup
    args: { game_id: 10 }
`)

	scenario, err := LoadScenarioWithBasePath(path, base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "alpha.cue"), scenario.Catalog)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "name: x\ndescription: y\nflows: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			content: "description: y\nflow:\n  - invoke: inspect\n    args: {}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\nflow:\n  - invoke: inspect\n    args: {}\n",
			wantErr: "description is required",
		},
		{
			name:    "empty flow",
			content: "name: x\ndescription: y\nflow: []\n",
			wantErr: "flow list is required",
		},
		{
			name:    "missing invoke",
			content: "name: x\ndescription: y\nflow:\n  - args: {}\n",
			wantErr: "flow[0]: invoke is required",
		},
		{
			name:    "unknown operation",
			content: "name: x\ndescription: y\nflow:\n  - invoke: explode\n    args: {}\n",
			wantErr: `unknown operation "explode"`,
		},
		{
			name:    "missing args",
			content: "name: x\ndescription: y\nflow:\n  - invoke: inspect\n",
			wantErr: "flow[0]: args is required",
		},
		{
			name:    "expect without case",
			content: "name: x\ndescription: y\nflow:\n  - invoke: inspect\n    args: {}\n    expect:\n      result: {}\n",
			wantErr: "flow[0].expect: case is required",
		},
		{
			name:    "missing catalog",
			content: "name: x\ndescription: y\ncatalog: nope.cue\nflow:\n  - invoke: inspect\n    args: {}\n",
			wantErr: "catalog file not found",
		},
		{
			name:    "unknown assertion",
			content: "name: x\ndescription: y\nflow:\n  - invoke: inspect\n    args: {}\nassertions:\n  - type: final_state\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "trace_order without actions",
			content: "name: x\ndescription: y\nflow:\n  - invoke: inspect\n    args: {}\nassertions:\n  - type: trace_order\n",
			wantErr: "actions list is required for trace_order",
		},
		{
			name:    "trace_count without action",
			content: "name: x\ndescription: y\nflow:\n  - invoke: inspect\n    args: {}\nassertions:\n  - type: trace_count\n    count: 1\n",
			wantErr: "action is required for trace_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			require.NoError(t, err)
		})
	}
}
