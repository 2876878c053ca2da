// Package harness runs codec scenarios: YAML files that drive the compression
// façade, check each outcome, and snapshot the resulting trace.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: path/to/catalog.cue   # optional, defaults to the embedded catalogue
//	flow:
//	  - invoke: compress
//	    args: { kind: id, refs: [260, 4574] }
//	    expect:
//	      case: Success
//	      result: { code: 1v2bYA }
//	  - invoke: decompress
//	    args: { code: 1v2bYA, lang: ja }
//	    expect:
//	      case: Success
//	      result: { ids: [1, 2] }
//	assertions:
//	  - type: trace_order
//	    actions: [compress, decompress]
//
// # Operations
//
//   - compress: args kind (id|name|signature, default name), refs, lang
//   - decompress: args code, lang; result ids and names
//   - inspect: args code; result version, bit_width, ids, current
//   - lookup: args game_id, lang; result id and name, or case NotFound
//   - macro: args code, lang, macrolock; result macros, actions, wait_seconds
//   - import: args text; result code
//
// A failing operation completes with its error code as the case (for
// example UNRESOLVED_REFERENCE) and the offending input as result.input.
//
// # Assertion Types
//
//   - trace_contains: an operation appears in the trace with matching args
//   - trace_order: operations appear in the given order
//   - trace_count: an operation appears exactly N times
//
// # Deterministic Testing
//
// Trace events are numbered by a per-run sequence and the codec is a pure
// function of the catalogue, so identical scenarios produce byte-identical
// snapshots for golden file comparison.
package harness
