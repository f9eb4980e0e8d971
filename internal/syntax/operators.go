package syntax

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// OperatorTable holds the unary and binary precedences keyed by token kind. A kind missing
// from a table (or mapped to 0) is not an operator in that position. Higher binds tighter.
// Tables must not be modified once handed to a parser.
type OperatorTable struct {
	Unary  map[Kind]int
	Binary map[Kind]int
}

var defaultOperators = OperatorTable{
	Unary: map[Kind]int{
		PlusToken:  6,
		MinusToken: 6,
		BangToken:  6,
	},
	Binary: map[Kind]int{
		StarToken:               5,
		SlashToken:              5,
		PlusToken:               4,
		MinusToken:              4,
		EqualsEqualsToken:       3,
		BangEqualsToken:         3,
		AmpersandAmpersandToken: 2,
		PipePipeToken:           1,
	},
}

// DefaultOperators returns a fresh copy of the built-in precedence tables.
func DefaultOperators() *OperatorTable {
	return &OperatorTable{
		Unary:  lo.Assign(map[Kind]int{}, defaultOperators.Unary),
		Binary: lo.Assign(map[Kind]int{}, defaultOperators.Binary),
	}
}

// UnaryPrecedence returns 0 for kinds that cannot be operators, whatever the table says.
func (t *OperatorTable) UnaryPrecedence(kind Kind) int {
	if !kind.IsOperatorCandidate() {
		return 0
	}
	return t.Unary[kind]
}

func (t *OperatorTable) BinaryPrecedence(kind Kind) int {
	if !kind.IsOperatorCandidate() {
		return 0
	}
	return t.Binary[kind]
}

// Validate rejects tables that mention kinds which cannot be operators or negative precedences.
func (t *OperatorTable) Validate() error {
	for name, table := range map[string]map[Kind]int{"unary": t.Unary, "binary": t.Binary} {
		for kind, prec := range table {
			if !kind.IsOperatorCandidate() {
				return fmt.Errorf("%s: %s cannot be an operator", name, kind)
			}
			if prec < 0 {
				return fmt.Errorf("%s: negative precedence %d for %s", name, prec, kind)
			}
		}
	}
	return nil
}

// OperatorEntry is one row of an operator table, for display and serialization.
type OperatorEntry struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Precedence int    `json:"precedence"`
}

// Entries lists a table ordered by descending precedence, then by kind.
func Entries(table map[Kind]int) []OperatorEntry {
	kinds := lo.Keys(table)
	sort.Slice(kinds, func(i, j int) bool {
		if table[kinds[i]] != table[kinds[j]] {
			return table[kinds[i]] > table[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return lo.Map(kinds, func(kind Kind, _ int) OperatorEntry {
		return OperatorEntry{Kind: kind.String(), Text: kind.Text(), Precedence: table[kind]}
	})
}

var (
	kindsByText = lo.Invert(kindTexts)
	kindsByName = lo.Invert(kindNames)
)

// LookupKind resolves an operator spelling ("+", "&&") or a kind name ("PlusToken").
func LookupKind(s string) (Kind, bool) {
	if kind, ok := kindsByText[s]; ok {
		return kind, true
	}
	kind, ok := kindsByName[s]
	return kind, ok
}
