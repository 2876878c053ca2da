package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource []byte

//go:embed catalog.cue
var catalogSource []byte

// actionDoc is the catalogue shape of one record.
type actionDoc struct {
	Names      map[string]string `json:"names"`
	Sheet      string            `json:"sheet"`
	IDs        []int             `json:"ids"`
	Signatures []string          `json:"signatures"`
	WaitTime   int               `json:"wait_time"`
	Icon       int               `json:"icon"`
}

// Embedded builds a registry from the catalogue compiled into the binary.
func Embedded() (*Registry, error) {
	return Load(catalogSource, "catalog.cue")
}

// LoadFile builds a registry from a CUE catalogue on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return Load(data, path)
}

// Load compiles a CUE catalogue, checks every record against the #Action
// schema, and builds a registry. Schema and registry validation problems are
// all reported together as ValidationErrors.
func Load(data []byte, filename string) (*Registry, error) {
	actions, errs := Decode(data, filename)
	r, err := New(actions)
	if err != nil {
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		errs = append(errs, verrs...)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return r, nil
}

// Decode compiles a CUE catalogue and returns the records that satisfy the
// schema, along with a ValidationError for each one that does not.
func Decode(data []byte, filename string) ([]Action, ValidationErrors) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, ValidationErrors{{Field: "schema", Message: err.Error(), Code: ErrCatalogSyntax}}
	}
	def := schema.LookupPath(cue.ParsePath("#Action"))

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, ValidationErrors{{Field: filename, Message: err.Error(), Code: ErrCatalogSyntax}}
	}

	actionsVal := value.LookupPath(cue.ParsePath("actions"))
	if !actionsVal.Exists() {
		return nil, ValidationErrors{{Field: "actions", Message: "catalogue has no actions", Code: ErrSchema}}
	}
	iter, err := actionsVal.Fields()
	if err != nil {
		return nil, ValidationErrors{{Field: "actions", Message: err.Error(), Code: ErrSchema}}
	}

	var (
		actions []Action
		errs    ValidationErrors
	)
	for iter.Next() {
		label := iter.Label()
		field := "actions." + label

		id, err := strconv.Atoi(label)
		if err != nil || id <= 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("key %q is not a positive integer", label),
				Code:    ErrInvalidID,
			})
			continue
		}

		rec := def.Unify(iter.Value())
		if err := rec.Validate(cue.Concrete(true)); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Code: ErrSchema})
			continue
		}
		var doc actionDoc
		if err := rec.Decode(&doc); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Code: ErrSchema})
			continue
		}
		actions = append(actions, doc.action(ID(id)))
	}

	return actions, errs
}

func (d actionDoc) action(id ID) Action {
	names := make(map[Language]string, len(d.Names))
	for k, v := range d.Names {
		names[Language(k)] = v
	}
	sigs := d.Signatures
	if sigs == nil {
		sigs = []string{}
	}
	return Action{
		ID:         id,
		Names:      names,
		Sheet:      Sheet(d.Sheet),
		GameIDs:    d.IDs,
		Signatures: sigs,
		WaitTime:   d.WaitTime,
		Icon:       d.Icon,
	}
}
