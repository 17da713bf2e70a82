package ast

import "fmt"

// Position represents a line/column position in source text.
// Uses LSP conventions: 1-based line numbers, 0-based character offsets.
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based character offset within line
}

// Range represents a source code span from start to end position.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// String renders the range start as file-friendly "line:col".
func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Start.Line, r.Start.Character)
}
