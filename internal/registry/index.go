package registry

import "fmt"

// Index holds the reverse lookups from external references to canonical IDs.
// It is built in one pass from a record list and never modified afterwards.
type Index struct {
	byGameID    map[int]ID
	byName      map[Language]map[string]ID
	bySignature map[string]ID

	// byAnyName ignores the language. Names claimed by two different records
	// in different languages are ambiguous and left out.
	byAnyName map[string]ID
	ambiguous map[string]struct{}
}

// BuildIndex flattens the one-to-many reference lists of actions into
// one-to-one reverse maps. A reference claimed by two records is reported and
// kept pointing at the first claimant.
func BuildIndex(actions []Action) (*Index, []ValidationError) {
	idx := &Index{
		byGameID:    make(map[int]ID),
		byName:      make(map[Language]map[string]ID, len(Languages)),
		bySignature: make(map[string]ID),
		byAnyName:   make(map[string]ID),
		ambiguous:   make(map[string]struct{}),
	}
	for _, lang := range Languages {
		idx.byName[lang] = make(map[string]ID)
	}

	var errs []ValidationError
	for _, a := range actions {
		field := fmt.Sprintf("actions.%d", a.ID)

		for _, gid := range a.GameIDs {
			if prev, ok := idx.byGameID[gid]; ok && prev != a.ID {
				errs = append(errs, ValidationError{
					Field:   field + ".ids",
					Message: fmt.Sprintf("game ID %d already belongs to action %d", gid, prev),
					Code:    ErrDuplicateGameID,
				})
				continue
			}
			idx.byGameID[gid] = a.ID
		}

		for _, sig := range a.Signatures {
			if prev, ok := idx.bySignature[sig]; ok && prev != a.ID {
				errs = append(errs, ValidationError{
					Field:   field + ".signatures",
					Message: fmt.Sprintf("signature %q already belongs to action %d", sig, prev),
					Code:    ErrDuplicateSignature,
				})
				continue
			}
			idx.bySignature[sig] = a.ID
		}

		for _, lang := range Languages {
			name, ok := a.Names[lang]
			if !ok || name == "" {
				continue
			}
			names := idx.byName[lang]
			if prev, ok := names[name]; ok && prev != a.ID {
				errs = append(errs, ValidationError{
					Field:   field + ".names." + string(lang),
					Message: fmt.Sprintf("name %q already belongs to action %d", name, prev),
					Code:    ErrDuplicateName,
				})
				continue
			}
			names[name] = a.ID
			idx.addAnyName(name, a.ID)
		}
	}

	return idx, errs
}

func (idx *Index) addAnyName(name string, id ID) {
	if _, ok := idx.ambiguous[name]; ok {
		return
	}
	if prev, ok := idx.byAnyName[name]; ok && prev != id {
		delete(idx.byAnyName, name)
		idx.ambiguous[name] = struct{}{}
		return
	}
	idx.byAnyName[name] = id
}

// ByGameID resolves a numeric game ID.
func (idx *Index) ByGameID(gameID int) (ID, bool) {
	id, ok := idx.byGameID[gameID]
	return id, ok
}

// ByName resolves a display name in one language. Matching is exact and
// case-sensitive.
func (idx *Index) ByName(lang Language, name string) (ID, bool) {
	id, ok := idx.byName[lang][name]
	return id, ok
}

// ByAnyName resolves a display name in whichever language it belongs to.
func (idx *Index) ByAnyName(name string) (ID, bool) {
	id, ok := idx.byAnyName[name]
	return id, ok
}

// BySignature resolves a programmatic alias.
func (idx *Index) BySignature(sig string) (ID, bool) {
	id, ok := idx.bySignature[sig]
	return id, ok
}

// Ambiguous reports whether name belongs to different actions in different
// languages, which keeps it out of ByAnyName.
func (idx *Index) Ambiguous(name string) bool {
	_, ok := idx.ambiguous[name]
	return ok
}
