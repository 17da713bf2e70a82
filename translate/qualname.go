package translate

import "github.com/typebridge/typebridge/ast"

// QualifiedName resolves a statement's dotted declaration path, or nil when
// the statement does not declare a statically nameable target. Absence is
// not an error: call-expression statements and paths containing computed or
// literal segments simply resolve to nothing.
func QualifiedName(stmt ast.Stmt) []string {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return flattenPath(s.Target)
	case *ast.ExprStmt:
		if _, isCall := s.X.(*ast.Call); isCall {
			return nil
		}
		return flattenPath(s.X)
	case *ast.VarStmt:
		return []string{s.Name}
	case *ast.FuncDeclStmt:
		return []string{s.Name}
	}
	return nil
}

// flattenPath turns a member-access chain into ordered identifier segments.
// A computed access or a non-identifier base anywhere in the chain makes the
// whole path unresolvable.
func flattenPath(e ast.Expr) []string {
	switch t := e.(type) {
	case *ast.Ident:
		return []string{t.Name}
	case *ast.Member:
		if t.Computed {
			return nil
		}
		base := flattenPath(t.X)
		if base == nil {
			return nil
		}
		return append(base, t.Property)
	}
	return nil
}
