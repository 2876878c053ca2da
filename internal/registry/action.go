package registry

import (
	"maps"
	"slices"
)

// ID is a canonical action identifier. IDs are positive and never reused.
type ID int

// Sheet names the game data table an action's game IDs come from.
type Sheet string

const (
	SheetAction      Sheet = "Action"
	SheetCraftAction Sheet = "CraftAction"
)

// Valid reports whether s is a known sheet.
func (s Sheet) Valid() bool {
	return s == SheetAction || s == SheetCraftAction
}

// Action is one catalogue record. Values handed out by a Registry are copies.
type Action struct {
	ID         ID                  `json:"id"`
	Names      map[Language]string `json:"names"`
	Sheet      Sheet               `json:"sheet"`
	GameIDs    []int               `json:"ids"`
	Signatures []string            `json:"signatures"`
	WaitTime   int                 `json:"wait_time"` // seconds to wait after use in a macro
	Icon       int                 `json:"icon"`
}

// Name returns the display name in lang, falling back to English.
func (a Action) Name(lang Language) string {
	if n := a.Names[lang]; n != "" {
		return n
	}
	return a.Names[English]
}

// Clone returns a deep copy of a.
func (a Action) Clone() Action {
	a.Names = maps.Clone(a.Names)
	a.GameIDs = slices.Clone(a.GameIDs)
	a.Signatures = slices.Clone(a.Signatures)
	if a.Signatures == nil {
		a.Signatures = []string{}
	}
	return a
}
