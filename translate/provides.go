package translate

import (
	"strings"

	"github.com/typebridge/typebridge/ast"
)

// CollectProvides scans a statement list for goog.provide directives and
// returns the declared namespace paths in encounter order. The scan is
// independent of the declaration model: duplicates are preserved, and
// statements that are fatal to the classifier contribute nothing here but
// do not stop the scan.
func CollectProvides(stmts []ast.Stmt) []string {
	var provides []string
	for _, stmt := range stmts {
		if name, ok := provideTarget(stmt); ok {
			provides = append(provides, name)
		}
	}
	return provides
}

func provideTarget(stmt ast.Stmt) (string, bool) {
	expr, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return "", false
	}
	call, ok := expr.X.(*ast.Call)
	if !ok {
		return "", false
	}
	callee := flattenPath(call.Callee)
	if strings.Join(callee, ".") != "goog.provide" {
		return "", false
	}
	if len(call.Args) != 1 {
		return "", false
	}
	lit, ok := call.Args[0].(*ast.StringLit)
	if !ok {
		return "", false
	}
	return lit.Value, true
}

// isDirective reports whether the statement is an export/namespace
// declaration directive, which the classifier skips unconditionally.
func isDirective(stmt ast.Stmt) bool {
	_, ok := provideTarget(stmt)
	if ok {
		return true
	}
	// goog.require and goog.setTestOnly are directives too: never
	// declarations, never fatal.
	expr, isExpr := stmt.(*ast.ExprStmt)
	if !isExpr {
		return false
	}
	call, isCall := expr.X.(*ast.Call)
	if !isCall {
		return false
	}
	switch strings.Join(flattenPath(call.Callee), ".") {
	case "goog.require", "goog.setTestOnly":
		return true
	}
	return false
}
