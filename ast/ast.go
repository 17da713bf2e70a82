// Package ast defines the statement and expression tree typebridge consumes.
//
// The tree is the contract with the external JavaScript parser: typebridge
// never lexes source text itself. Statements arrive in source order, each
// optionally carrying the documentation comment that immediately precedes it.
// The statement grammar is closed; the classifier treats any kind outside it
// as fatal rather than silently widening coverage.
package ast

import "strings"

// Comment is a leading comment attached to a statement.
type Comment struct {
	Text  string `json:"text"`  // raw comment text including /* */ markers
	Block bool   `json:"block"` // true for block comments, false for line comments
}

// IsDoc reports whether the comment is a documentation block (/** ... */).
// Only documentation blocks carry recognized annotation tags.
func (c *Comment) IsDoc() bool {
	return c != nil && c.Block && strings.HasPrefix(c.Text, "/**")
}

// Module is one parsed source file: its path and top-level statements in
// source order.
type Module struct {
	Path  string
	Stmts []Stmt
}

// Stmt is a top-level statement. The set of implementations is closed.
type Stmt interface {
	stmtNode()
	Span() Range
	// Describe renders an approximation of the statement's source text for
	// error messages and skip logging.
	Describe() string
}

// ExprStmt is an expression used as a statement: a bare member access
// (goog.foo.Bar;) or a call (goog.provide('goog.foo');).
type ExprStmt struct {
	X     Expr
	Doc   *Comment
	Range Range
}

// AssignStmt is `target = value;` at top level.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Doc    *Comment
	Range  Range
}

// VarStmt is `var name = value;` (value may be nil).
type VarStmt struct {
	Name  string
	Value Expr
	Doc   *Comment
	Range Range
}

// FuncDeclStmt is a named function declaration at top level.
type FuncDeclStmt struct {
	Name   string
	Params []string
	Doc    *Comment
	Range  Range
}

// IfStmt is a top-level conditional. Its body is opaque: conditional
// declarations are never analyzed.
type IfStmt struct {
	Range Range
}

// TryStmt is a top-level try/catch. Opaque, like IfStmt.
type TryStmt struct {
	Range Range
}

// UnknownStmt is a statement kind outside the recognized grammar. Reaching
// the classifier with one of these is fatal.
type UnknownStmt struct {
	Kind  string
	Range Range
}

func (*ExprStmt) stmtNode()     {}
func (*AssignStmt) stmtNode()   {}
func (*VarStmt) stmtNode()      {}
func (*FuncDeclStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*TryStmt) stmtNode()      {}
func (*UnknownStmt) stmtNode()  {}

func (s *ExprStmt) Span() Range     { return s.Range }
func (s *AssignStmt) Span() Range   { return s.Range }
func (s *VarStmt) Span() Range      { return s.Range }
func (s *FuncDeclStmt) Span() Range { return s.Range }
func (s *IfStmt) Span() Range       { return s.Range }
func (s *TryStmt) Span() Range      { return s.Range }
func (s *UnknownStmt) Span() Range  { return s.Range }

func (s *ExprStmt) Describe() string   { return ExprString(s.X) + ";" }
func (s *AssignStmt) Describe() string { return ExprString(s.Target) + " = " + ExprString(s.Value) }
func (s *VarStmt) Describe() string {
	if s.Value == nil {
		return "var " + s.Name
	}
	return "var " + s.Name + " = " + ExprString(s.Value)
}
func (s *FuncDeclStmt) Describe() string {
	return "function " + s.Name + "(" + strings.Join(s.Params, ", ") + ")"
}
func (s *IfStmt) Describe() string      { return "if (...)" }
func (s *TryStmt) Describe() string     { return "try {...}" }
func (s *UnknownStmt) Describe() string { return "<" + s.Kind + ">" }

// DocComment returns the statement's attached leading comment, or nil for
// statement kinds that never carry one.
func DocComment(s Stmt) *Comment {
	switch t := s.(type) {
	case *ExprStmt:
		return t.Doc
	case *AssignStmt:
		return t.Doc
	case *VarStmt:
		return t.Doc
	case *FuncDeclStmt:
		return t.Doc
	}
	return nil
}

// Expr is an expression. Unlike statements the set is open at the decoder
// boundary: values the translator never inspects decode to Opaque.
type Expr interface {
	exprNode()
}

// Ident is a bare identifier.
type Ident struct {
	Name string
}

// Member is a property access `x.prop` or `x[prop]` (Computed).
type Member struct {
	X        Expr
	Property string
	Computed bool
}

// Call is a call expression.
type Call struct {
	Callee Expr
	Args   []Expr
}

// FuncLit is an anonymous function expression.
type FuncLit struct {
	Params []string
}

// FieldKeyKind discriminates object literal key syntax.
type FieldKeyKind int

const (
	KeyIdent FieldKeyKind = iota
	KeyString
	KeyNumber
	KeyOther
)

// ObjectField is one key/value pair of an object literal, in source order.
type ObjectField struct {
	Key     string
	KeyKind FieldKeyKind
	Value   Expr
}

// ObjectLit is an object literal with fields in source order.
type ObjectLit struct {
	Fields []ObjectField
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elems []Expr
}

// StringLit is a string literal (value without quotes).
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal, kept as source text.
type NumberLit struct {
	Raw string
}

// Opaque is any expression kind the translator has no need to inspect.
type Opaque struct {
	Kind string
}

func (*Ident) exprNode()     {}
func (*Member) exprNode()    {}
func (*Call) exprNode()      {}
func (*FuncLit) exprNode()   {}
func (*ObjectLit) exprNode() {}
func (*ArrayLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*NumberLit) exprNode() {}
func (*Opaque) exprNode()    {}

// ExprString renders an approximation of an expression's source text.
func ExprString(e Expr) string {
	switch t := e.(type) {
	case nil:
		return ""
	case *Ident:
		return t.Name
	case *Member:
		if t.Computed {
			return ExprString(t.X) + "[" + t.Property + "]"
		}
		return ExprString(t.X) + "." + t.Property
	case *Call:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = ExprString(a)
		}
		return ExprString(t.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *FuncLit:
		return "function(" + strings.Join(t.Params, ", ") + ") {...}"
	case *ObjectLit:
		return "{...}"
	case *ArrayLit:
		return "[...]"
	case *StringLit:
		return "'" + t.Value + "'"
	case *NumberLit:
		return t.Raw
	case *Opaque:
		return "<" + t.Kind + ">"
	}
	return "<expr>"
}
