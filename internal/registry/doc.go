// Package registry holds the crafting action catalogue and the indices that
// resolve external references onto canonical identifiers.
//
// The catalogue ships as an embedded CUE document (catalog.cue) whose records
// are checked against the #Action definition in schema.cue. Each record has a
// canonical identifier, one display name per supported language, the game IDs
// that denote it across game versions, and programmatic signatures.
//
// Canonical identifiers are positive, fixed forever, and never reused; the
// catalogue is append only. Identifier 0 is reserved because packed codes
// treat a zero group as padding.
//
// Key design constraints:
//   - A Registry is immutable after New; accessors return copies
//   - The resolver Index is built in one pass before the Registry is published
//   - No two records share a game ID, a signature, or a (language, name) pair
package registry
