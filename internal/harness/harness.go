package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xiv-cac/cac/internal/cac"
	"github.com/xiv-cac/cac/internal/cacerr"
	"github.com/xiv-cac/cac/internal/macro"
	"github.com/xiv-cac/cac/internal/registry"
	"github.com/xiv-cac/cac/internal/testutil"
)

// Outcome cases that are not error codes.
const (
	CaseSuccess  = "Success"
	CaseNotFound = "NotFound"
	CaseNoAction = "NO_ACTIONS"
	CaseError    = "Error"
)

// Harness runs one scenario against a codec.
type Harness struct {
	codec  *cac.Codec
	seq    *testutil.Sequence
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario gets its own codec, built from the scenario catalogue or the
// embedded one, and its own sequence so traces are reproducible.
//
// Execution flow:
// 1. Load the catalogue
// 2. Execute flow steps, checking expect clauses
// 3. Evaluate assertions over the trace
func Run(scenario *Scenario) (*Result, error) {
	reg := registry.Default()
	if scenario.Catalog != "" {
		var err error
		reg, err = registry.LoadFile(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	h := &Harness{
		codec:  cac.New(reg),
		seq:    testutil.NewSequence(),
		logger: slog.Default().With("scenario", scenario.Name),
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("failed to execute flow: %w", err)
		}
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeStep invokes one operation, records it in the trace, and checks
// the expect clause.
func (h *Harness) executeStep(i int, step FlowStep, result *Result) error {
	args, err := normalize(step.Args)
	if err != nil {
		return fmt.Errorf("flow step %d: failed to convert args: %w", i, err)
	}
	result.AddInvocationTrace(step.Invoke, args, h.seq.Next())

	outcome, out, err := h.invoke(step)
	if err != nil {
		return fmt.Errorf("flow step %d (%s): %w", i, step.Invoke, err)
	}
	res, err := normalize(out)
	if err != nil {
		return fmt.Errorf("flow step %d: failed to convert result: %w", i, err)
	}
	result.AddCompletionTrace(outcome, res, h.seq.Next())

	if step.Expect != nil {
		if step.Expect.Case != outcome {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected case %s, got %s (result %v)",
				i, step.Invoke, step.Expect.Case, outcome, res))
		} else if step.Expect.Result != nil {
			want, err := normalize(step.Expect.Result)
			if err != nil {
				return fmt.Errorf("flow step %d: failed to convert expected result: %w", i, err)
			}
			wantMap, _ := want.(map[string]interface{})
			if !matchArgs(res, wantMap) {
				result.AddError(fmt.Sprintf("flow[%d] %s: expected result %v, got %v",
					i, step.Invoke, wantMap, res))
			}
		}
	}

	h.logger.Debug("flow step completed",
		"step", i,
		"op", step.Invoke,
		"case", outcome,
	)
	return nil
}

// invoke dispatches a step to the codec. Operation failures are reported
// as an outcome case; only malformed arguments return an error.
func (h *Harness) invoke(step FlowStep) (string, map[string]interface{}, error) {
	args := step.Args
	switch step.Invoke {
	case OpCompress:
		kind, err := cac.ParseKind(stringArg(args, "kind", string(cac.KindName)))
		if err != nil {
			return "", nil, err
		}
		refs, err := listArg(args, "refs")
		if err != nil {
			return "", nil, err
		}
		var code string
		if lang := stringArg(args, "lang", ""); lang != "" && kind == cac.KindName {
			l, err := registry.ParseLanguage(lang)
			if err != nil {
				return "", nil, err
			}
			code, err = h.codec.CompressNames(l, refs)
			if err != nil {
				return failure(err)
			}
		} else {
			code, err = h.codec.Compress(kind, refs)
			if err != nil {
				return failure(err)
			}
		}
		return CaseSuccess, map[string]interface{}{"code": code}, nil

	case OpDecompress:
		lang, err := langArg(args)
		if err != nil {
			return "", nil, err
		}
		actions, err := h.codec.Decompress(stringArg(args, "code", ""))
		if err != nil {
			return failure(err)
		}
		ids := make([]int, len(actions))
		names := make([]string, len(actions))
		for i, a := range actions {
			ids[i] = int(a.ID)
			names[i] = a.Name(lang)
		}
		return CaseSuccess, map[string]interface{}{"ids": ids, "names": names}, nil

	case OpInspect:
		d, err := h.codec.Inspect(stringArg(args, "code", ""))
		if err != nil {
			return failure(err)
		}
		return CaseSuccess, map[string]interface{}{
			"version":   d.Version,
			"bit_width": d.BitWidth,
			"ids":       d.IDs,
			"current":   d.Current(),
		}, nil

	case OpLookup:
		gameID, err := intArg(args, "game_id")
		if err != nil {
			return "", nil, err
		}
		lang, err := langArg(args)
		if err != nil {
			return "", nil, err
		}
		a, ok := h.codec.LookupByGameID(gameID)
		if !ok {
			return CaseNotFound, map[string]interface{}{"game_id": gameID}, nil
		}
		return CaseSuccess, map[string]interface{}{"id": int(a.ID), "name": a.Name(lang)}, nil

	case OpMacro:
		s := macro.DefaultSettings()
		lang, err := langArg(args)
		if err != nil {
			return "", nil, err
		}
		s.Language = lang
		if v, ok := args["macrolock"].(bool); ok {
			s.Macrolock = v
		}
		actions, err := h.codec.Decompress(stringArg(args, "code", ""))
		if err != nil {
			return failure(err)
		}
		sum := macro.Summarize(actions)
		return CaseSuccess, map[string]interface{}{
			"macros":       macro.Build(actions, s),
			"actions":      sum.Actions,
			"wait_seconds": sum.WaitSeconds,
		}, nil

	case OpImport:
		code, err := macro.Import(h.codec, stringArg(args, "text", ""))
		if err != nil {
			return failure(err)
		}
		return CaseSuccess, map[string]interface{}{"code": code}, nil

	default:
		return "", nil, fmt.Errorf("unknown operation %q", step.Invoke)
	}
}

// failure maps an operation error onto an outcome case.
func failure(err error) (string, map[string]interface{}, error) {
	if code, ok := cacerr.CodeOf(err); ok {
		return string(code), map[string]interface{}{"input": cacerr.InputOf(err)}, nil
	}
	if errors.Is(err, macro.ErrNoActions) {
		return CaseNoAction, map[string]interface{}{}, nil
	}
	return CaseError, map[string]interface{}{"message": err.Error()}, nil
}

func stringArg(args map[string]interface{}, key, def string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return def
	}
	return fmt.Sprint(v)
}

func intArg(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s: %v is not an integer", key, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s: unsupported type %T", key, v)
	}
}

// listArg reads a list argument as strings. YAML numbers are rendered as
// decimal text so game IDs can be written unquoted.
func listArg(args map[string]interface{}, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return []string{}, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", key, v)
	}
	out := make([]string, len(list))
	for i, elem := range list {
		out[i] = fmt.Sprint(elem)
	}
	return out, nil
}

func langArg(args map[string]interface{}) (registry.Language, error) {
	return registry.ParseLanguage(stringArg(args, "lang", string(registry.English)))
}

// normalize converts a value to its JSON data model (maps, slices, strings,
// float64, bool) so YAML input and Go results compare and serialize alike.
func normalize(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
