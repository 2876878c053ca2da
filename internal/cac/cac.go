// Package cac compresses sequences of crafting-action references into CAC
// codes and expands codes back into catalogue records.
//
// References may be numeric game IDs, display names, or signatures. They are
// resolved onto canonical identifiers, bit-packed, and wrapped in the
// envelope format; see package envelope. Every call either fully succeeds or
// fails on the first problem with a *cacerr.Error.
package cac

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xiv-cac/cac/internal/cacerr"
	"github.com/xiv-cac/cac/internal/envelope"
	"github.com/xiv-cac/cac/internal/registry"
)

// Kind selects the resolver used for references.
type Kind string

const (
	KindID        Kind = "id"
	KindName      Kind = "name"
	KindSignature Kind = "signature"
)

// ValidKinds lists the accepted reference kinds.
var ValidKinds = []Kind{KindID, KindName, KindSignature}

// ParseKind validates a reference kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidKinds {
		if v == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid kind %q: must be one of %v", s, ValidKinds)
}

// Codec binds the compression operations to one registry.
type Codec struct {
	registry *registry.Registry
	version  int
}

// New creates a Codec over reg that writes envelope.FormatVersion codes.
func New(reg *registry.Registry) *Codec {
	return &Codec{registry: reg, version: envelope.FormatVersion}
}

// Default returns a Codec over the process-wide registry.
func Default() *Codec {
	return New(registry.Default())
}

// Registry returns the registry the codec resolves against.
func (c *Codec) Registry() *registry.Registry {
	return c.registry
}

// Compress resolves refs with the resolver for kind and encodes the result.
// Names are matched in any supported language. Resolution stops at the first
// reference that does not resolve; no code is returned in that case.
func (c *Codec) Compress(kind Kind, refs []string) (string, error) {
	return c.compress(kind, "", refs)
}

// CompressNames encodes display names in lang, or in any language when lang
// is empty.
func (c *Codec) CompressNames(lang registry.Language, names []string) (string, error) {
	return c.compress(KindName, lang, names)
}

// CompressSignatures encodes signatures.
func (c *Codec) CompressSignatures(sigs []string) (string, error) {
	return c.compress(KindSignature, "", sigs)
}

// CompressIDs encodes numeric game IDs.
func (c *Codec) CompressIDs(gameIDs []int) (string, error) {
	ids := make([]int, len(gameIDs))
	idx := c.registry.Index()
	for i, gid := range gameIDs {
		id, ok := idx.ByGameID(gid)
		if !ok {
			return "", unresolved(KindID, gid)
		}
		ids[i] = int(id)
	}
	return c.encode(KindID, ids)
}

func (c *Codec) compress(kind Kind, lang registry.Language, refs []string) (string, error) {
	ids := make([]int, len(refs))
	for i, ref := range refs {
		id, ok := c.resolve(kind, lang, ref)
		if !ok {
			return "", unresolved(kind, ref)
		}
		ids[i] = int(id)
	}
	return c.encode(kind, ids)
}

func (c *Codec) resolve(kind Kind, lang registry.Language, ref string) (registry.ID, bool) {
	idx := c.registry.Index()
	switch kind {
	case KindID:
		gid, err := strconv.Atoi(strings.TrimSpace(ref))
		if err != nil {
			return 0, false
		}
		return idx.ByGameID(gid)
	case KindName:
		if lang != "" {
			return idx.ByName(lang, ref)
		}
		return idx.ByAnyName(ref)
	case KindSignature:
		return idx.BySignature(ref)
	default:
		return 0, false
	}
}

func (c *Codec) encode(kind Kind, ids []int) (string, error) {
	code, err := envelope.EncodeVersion(c.version, ids)
	if err != nil {
		return "", err
	}
	slog.Debug("compressed references",
		"kind", kind,
		"count", len(ids),
		"code", code,
	)
	return code, nil
}

func unresolved(kind Kind, ref any) error {
	return cacerr.New(cacerr.CodeUnresolvedReference, ref, "no action with %s %q", kind, fmt.Sprint(ref))
}

// Decompress parses code and returns the record for each identifier, in
// order. An identifier missing from the registry fails the whole call.
func (c *Codec) Decompress(code string) ([]registry.Action, error) {
	d, err := envelope.Decode(code)
	if err != nil {
		return nil, err
	}
	if !d.Current() {
		slog.Debug("decoding code from another format version",
			"version", d.Version,
			"current", envelope.FormatVersion,
		)
	}

	actions := make([]registry.Action, 0, len(d.IDs))
	for _, id := range d.IDs {
		a, ok := c.registry.Get(registry.ID(id))
		if !ok {
			return nil, cacerr.New(cacerr.CodeUnknownIdentifier, id,
				"code references action %d, which this catalogue does not define", id)
		}
		actions = append(actions, a)
	}

	slog.Debug("decompressed code",
		"code", code,
		"count", len(actions),
	)
	return actions, nil
}

// LookupByGameID returns the record a game ID resolves to.
func (c *Codec) LookupByGameID(gameID int) (registry.Action, bool) {
	id, ok := c.registry.Index().ByGameID(gameID)
	if !ok {
		return registry.Action{}, false
	}
	return c.registry.Get(id)
}

// Inspect parses code without resolving its identifiers.
func (c *Codec) Inspect(code string) (envelope.Decoded, error) {
	return envelope.Decode(code)
}
