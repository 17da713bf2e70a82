package translate

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/typebridge/typebridge/ast"
)

// StatementError is a fatal classification or translation error carrying the
// offending statement, so a human can patch either the input corpus or the
// translator's coverage. It aborts the whole module: a partially correct
// declaration file would be worse than a loud failure.
type StatementError struct {
	ModulePath string
	Range      ast.Range
	Statement  string // approximate source text of the failing statement
	Err        error
}

// Error implements the error interface with a plain, log-friendly message.
func (e *StatementError) Error() string {
	return fmt.Sprintf("%s:%s: %v\n  statement: %s", e.ModulePath, e.Range, e.Err, e.Statement)
}

// Unwrap exposes the underlying error for errors.Is checks against the
// translation sentinels.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// FormatTerminal renders a colored version of the error for CLI output.
func (e *StatementError) FormatTerminal() string {
	return fmt.Sprintf("%s %s\n  %s %s\n  %s %s",
		pterm.Red("✗"),
		pterm.Red(e.Err.Error()),
		pterm.Gray("at:"),
		fmt.Sprintf("%s:%s", e.ModulePath, e.Range),
		pterm.Gray("statement:"),
		e.Statement,
	)
}

func statementError(modulePath string, stmt ast.Stmt, err error) error {
	return &StatementError{
		ModulePath: modulePath,
		Range:      stmt.Span(),
		Statement:  stmt.Describe(),
		Err:        err,
	}
}
