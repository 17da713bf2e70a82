package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModule = `{
  "path": "closure/goog/dom/dom.js",
  "statements": [
    {
      "kind": "expr",
      "range": {"start": {"line": 1, "character": 0}, "end": {"line": 1, "character": 25}},
      "expression": {
        "kind": "call",
        "callee": {
          "kind": "member",
          "object": {"kind": "ident", "name": "goog"},
          "property": "provide"
        },
        "args": [{"kind": "string", "value": "goog.dom"}]
      }
    },
    {
      "kind": "assign",
      "doc": {"text": "/**\n * @constructor\n */", "block": true},
      "range": {"start": {"line": 10, "character": 0}, "end": {"line": 12, "character": 2}},
      "target": {
        "kind": "member",
        "object": {
          "kind": "member",
          "object": {"kind": "ident", "name": "goog"},
          "property": "dom"
        },
        "property": "DomHelper"
      },
      "value": {"kind": "function", "params": ["opt_document"]}
    },
    {
      "kind": "assign",
      "doc": {"text": "/**\n * @enum {number}\n */", "block": true},
      "range": {"start": {"line": 20, "character": 0}, "end": {"line": 24, "character": 2}},
      "target": {
        "kind": "member",
        "object": {
          "kind": "member",
          "object": {"kind": "ident", "name": "goog"},
          "property": "dom"
        },
        "property": "NodeType"
      },
      "value": {
        "kind": "object",
        "fields": [
          {"key": "ELEMENT", "value": {"kind": "number", "raw": "1"}},
          {"key": "text", "keyKind": "string", "value": {"kind": "number", "raw": "3"}}
        ]
      }
    },
    {
      "kind": "var",
      "range": {"start": {"line": 30, "character": 0}, "end": {"line": 30, "character": 20}},
      "name": "helper",
      "value": {"kind": "new", "callee": {"kind": "ident", "name": "DomHelper"}}
    },
    {
      "kind": "if",
      "range": {"start": {"line": 40, "character": 0}, "end": {"line": 44, "character": 1}}
    },
    {
      "kind": "with",
      "range": {"start": {"line": 50, "character": 0}, "end": {"line": 52, "character": 1}}
    }
  ]
}`

func TestDecodeModule(t *testing.T) {
	mod, err := DecodeModule(strings.NewReader(sampleModule))
	require.NoError(t, err)

	assert.Equal(t, "closure/goog/dom/dom.js", mod.Path)
	require.Len(t, mod.Stmts, 6)

	provide, ok := mod.Stmts[0].(*ExprStmt)
	require.True(t, ok)
	call, ok := provide.X.(*Call)
	require.True(t, ok)
	assert.Equal(t, "goog.provide", ExprString(call.Callee))
	require.Len(t, call.Args, 1)
	assert.Equal(t, &StringLit{Value: "goog.dom"}, call.Args[0])
	assert.Nil(t, provide.Doc)

	ctor, ok := mod.Stmts[1].(*AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "goog.dom.DomHelper", ExprString(ctor.Target))
	assert.True(t, ctor.Doc.IsDoc())
	assert.Equal(t, []string{"opt_document"}, ctor.Value.(*FuncLit).Params)
	assert.Equal(t, "10:0", ctor.Span().String())

	enum := mod.Stmts[2].(*AssignStmt)
	fields := enum.Value.(*ObjectLit).Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "ELEMENT", fields[0].Key)
	assert.Equal(t, KeyIdent, fields[0].KeyKind)
	assert.Equal(t, KeyString, fields[1].KeyKind)

	// Expressions the translator never inspects decode to Opaque.
	varStmt := mod.Stmts[3].(*VarStmt)
	assert.Equal(t, "helper", varStmt.Name)
	assert.Equal(t, &Opaque{Kind: "new"}, varStmt.Value)

	_, ok = mod.Stmts[4].(*IfStmt)
	assert.True(t, ok)

	// Unrecognized statement kinds survive decoding; the classifier decides
	// what to do with them.
	unknown, ok := mod.Stmts[5].(*UnknownStmt)
	require.True(t, ok)
	assert.Equal(t, "with", unknown.Kind)
}

func TestDecodeModule_Malformed(t *testing.T) {
	cases := map[string]string{
		"truncated document":   `{"path": "a.js", "statements": [`,
		"missing assign parts": `{"path": "a.js", "statements": [{"kind": "assign"}]}`,
		"missing expression":   `{"path": "a.js", "statements": [{"kind": "expr"}]}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeModule(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestCommentIsDoc(t *testing.T) {
	cases := []struct {
		comment *Comment
		want    bool
	}{
		{&Comment{Text: "/** @type {string} */", Block: true}, true},
		{&Comment{Text: "/* plain block */", Block: true}, false},
		{&Comment{Text: "// line", Block: false}, false},
		{nil, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.comment.IsDoc(), "%+v", tc.comment)
	}
}

func TestExprString(t *testing.T) {
	computed := &Member{
		X:        &Member{X: &Ident{Name: "goog"}, Property: "dom"},
		Property: "key",
		Computed: true,
	}
	assert.Equal(t, "goog.dom[key]", ExprString(computed))

	call := &Call{
		Callee: &Ident{Name: "f"},
		Args:   []Expr{&StringLit{Value: "x"}, &NumberLit{Raw: "2"}},
	}
	assert.Equal(t, "f('x', 2)", ExprString(call))
}
