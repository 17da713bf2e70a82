package ast

import (
	"encoding/json"
	"io"

	"github.com/typebridge/typebridge/errors"
)

// The external parser hands modules to typebridge as kind-tagged JSON, one
// document per source file. DecodeModule is the only entry point; the wire
// shapes below exist solely for unmarshalling.

type wireModule struct {
	Path       string            `json:"path"`
	Statements []json.RawMessage `json:"statements"`
}

type wireStmt struct {
	Kind   string          `json:"kind"`
	Doc    *Comment        `json:"doc,omitempty"`
	Range  Range           `json:"range"`
	Name   string          `json:"name,omitempty"`
	Params []string        `json:"params,omitempty"`
	X      json.RawMessage `json:"expression,omitempty"`
	Target json.RawMessage `json:"target,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
}

type wireExpr struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Object   json.RawMessage   `json:"object,omitempty"`
	Property string            `json:"property,omitempty"`
	Computed bool              `json:"computed,omitempty"`
	Callee   json.RawMessage   `json:"callee,omitempty"`
	Args     []json.RawMessage `json:"args,omitempty"`
	Params   []string          `json:"params,omitempty"`
	Fields   []wireField       `json:"fields,omitempty"`
	Elements []json.RawMessage `json:"elements,omitempty"`
	Value    string            `json:"value,omitempty"`
	Raw      string            `json:"raw,omitempty"`
}

type wireField struct {
	Key     string          `json:"key"`
	KeyKind string          `json:"keyKind,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

// DecodeModule reads one parser interchange document and builds the module
// tree. Statement kinds outside the recognized grammar decode to UnknownStmt
// so the classifier can surface them as fatal with source context; expression
// kinds the translator never inspects decode to Opaque.
func DecodeModule(r io.Reader) (*Module, error) {
	var wm wireModule
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wm); err != nil {
		return nil, errors.Wrap(err, "failed to decode module document")
	}

	mod := &Module{Path: wm.Path, Stmts: make([]Stmt, 0, len(wm.Statements))}
	for i, raw := range wm.Statements {
		stmt, err := decodeStmt(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "statement %d", i)
		}
		mod.Stmts = append(mod.Stmts, stmt)
	}
	return mod, nil
}

func decodeStmt(raw json.RawMessage) (Stmt, error) {
	var ws wireStmt
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, errors.Wrap(err, "malformed statement")
	}

	switch ws.Kind {
	case "expr":
		x, err := decodeExpr(ws.X)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x, Doc: ws.Doc, Range: ws.Range}, nil
	case "assign":
		target, err := decodeExpr(ws.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(ws.Value)
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Target: target, Value: value, Doc: ws.Doc, Range: ws.Range}, nil
	case "var":
		var value Expr
		if len(ws.Value) > 0 {
			var err error
			value, err = decodeExpr(ws.Value)
			if err != nil {
				return nil, err
			}
		}
		return &VarStmt{Name: ws.Name, Value: value, Doc: ws.Doc, Range: ws.Range}, nil
	case "function":
		return &FuncDeclStmt{Name: ws.Name, Params: ws.Params, Doc: ws.Doc, Range: ws.Range}, nil
	case "if":
		return &IfStmt{Range: ws.Range}, nil
	case "try":
		return &TryStmt{Range: ws.Range}, nil
	default:
		return &UnknownStmt{Kind: ws.Kind, Range: ws.Range}, nil
	}
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 {
		return nil, errors.New("missing expression")
	}
	var we wireExpr
	if err := json.Unmarshal(raw, &we); err != nil {
		return nil, errors.Wrap(err, "malformed expression")
	}

	switch we.Kind {
	case "ident":
		return &Ident{Name: we.Name}, nil
	case "member":
		obj, err := decodeExpr(we.Object)
		if err != nil {
			return nil, err
		}
		return &Member{X: obj, Property: we.Property, Computed: we.Computed}, nil
	case "call":
		callee, err := decodeExpr(we.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]Expr, 0, len(we.Args))
		for _, a := range we.Args {
			arg, err := decodeExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &Call{Callee: callee, Args: args}, nil
	case "function":
		return &FuncLit{Params: we.Params}, nil
	case "object":
		fields := make([]ObjectField, 0, len(we.Fields))
		for _, f := range we.Fields {
			var value Expr
			if len(f.Value) > 0 {
				var err error
				value, err = decodeExpr(f.Value)
				if err != nil {
					return nil, err
				}
			}
			fields = append(fields, ObjectField{
				Key:     f.Key,
				KeyKind: decodeKeyKind(f.KeyKind),
				Value:   value,
			})
		}
		return &ObjectLit{Fields: fields}, nil
	case "array":
		elems := make([]Expr, 0, len(we.Elements))
		for _, e := range we.Elements {
			elem, err := decodeExpr(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return &ArrayLit{Elems: elems}, nil
	case "string":
		return &StringLit{Value: we.Value}, nil
	case "number":
		return &NumberLit{Raw: we.Raw}, nil
	default:
		return &Opaque{Kind: we.Kind}, nil
	}
}

func decodeKeyKind(s string) FieldKeyKind {
	switch s {
	case "", "ident":
		return KeyIdent
	case "string":
		return KeyString
	case "number":
		return KeyNumber
	default:
		return KeyOther
	}
}
