// Package translate implements the annotation model builder: one pass over a
// parsed module's top-level statements that resolves qualified names,
// classifies declarations into the decl model, and translates the embedded
// type grammar into TypeScript type expressions.
package translate

import (
	"fmt"
	"strings"

	"github.com/typebridge/typebridge/errors"
	"github.com/typebridge/typebridge/jsdoc"
)

// typeRenames maps legacy capitalized primitive names onto their TypeScript
// spellings before any other rule runs.
var typeRenames = map[string]string{
	"Boolean":   "boolean",
	"Number":    "number",
	"String":    "string",
	"Void":      "void",
	"Undefined": "void",
	"Null":      "void",
}

// genericArity maps known container names to their expected type argument
// count. A bare reference to one of these is padded to full arity with `any`;
// an application with fewer arguments gets the remainder padded.
var genericArity = map[string]int{
	"Array":      1,
	"IArrayLike": 1,
	"IThenable":  1,
	"Promise":    1,
	"Set":        1,
	"WeakSet":    1,
	"Iterator":   1,
	"Iterable":   1,
	"Map":        2,
	"WeakMap":    2,
}

// alreadyGeneric names types that TypeScript treats as generic without
// argument syntax; applying arguments to them drops the arguments.
var alreadyGeneric = map[string]bool{
	"Function": true,
}

// typeFlags records where in the surrounding expression a node sits. Union
// membership controls function-type parenthesization; rest position controls
// union parenthesization; applied suppresses arity padding on the base name
// of a generic application.
type typeFlags struct {
	unionMember bool
	rest        bool
	applied     bool
}

// TranslateType translates one embedded type expression to a TypeScript type
// expression. Pure: same input, same output.
func TranslateType(e jsdoc.TypeExpr) (string, error) {
	return translateType(e, typeFlags{})
}

func translateType(e jsdoc.TypeExpr, f typeFlags) (string, error) {
	switch t := e.(type) {
	case *jsdoc.NameExpr:
		name := t.Name
		if renamed, ok := typeRenames[name]; ok {
			name = renamed
		}
		// Outside an application, a known container referenced bare still
		// needs its type arguments in TypeScript.
		if !f.applied {
			if arity, ok := genericArity[name]; ok && arity > 0 {
				return name + "<" + padAny(nil, arity) + ">", nil
			}
		}
		return name, nil

	case *jsdoc.AnyExpr:
		return "any", nil

	case *jsdoc.VoidExpr:
		return "void", nil

	case *jsdoc.OptionalExpr:
		// Optionality is expressed on the parameter name, never the type.
		return translateType(t.Elem, f)

	case *jsdoc.NullableExpr:
		// TypeScript types are uniformly nullable; the wrapper is erased.
		return translateType(t.Elem, f)

	case *jsdoc.NonNullableExpr:
		return translateType(t.Elem, f)

	case *jsdoc.UnionExpr:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			s, err := translateType(m, typeFlags{unionMember: true})
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		joined := strings.Join(parts, " | ")
		if f.rest {
			return "(" + joined + ")", nil
		}
		return joined, nil

	case *jsdoc.RestExpr:
		elem := t.Elem
		// `...Array.<T>` is shorthand for a variadic of T.
		if app, ok := elem.(*jsdoc.AppExpr); ok && app.Base.Name == "Array" && len(app.Args) == 1 {
			elem = app.Args[0]
		}
		s, err := translateType(elem, typeFlags{rest: true})
		if err != nil {
			return "", err
		}
		return s + "[]", nil

	case *jsdoc.AppExpr:
		return translateApp(t, f)

	case *jsdoc.FuncExpr:
		return translateFunc(t, f)

	case *jsdoc.RecordExpr:
		parts := make([]string, len(t.Fields))
		for i, field := range t.Fields {
			s, err := translateType(field.Type, typeFlags{})
			if err != nil {
				return "", err
			}
			parts[i] = field.Key + ": " + s
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	}

	// The grammar is closed; reaching here means the input widened behind
	// our back.
	return "", errors.Wrapf(errors.ErrUnsupportedType, "%T", e)
}

func translateApp(t *jsdoc.AppExpr, f typeFlags) (string, error) {
	base, err := translateType(t.Base, typeFlags{applied: true})
	if err != nil {
		return "", err
	}

	// Object.<K, V> becomes an index-signature structural type.
	if base == "Object" {
		return translateIndexSignature(t)
	}

	if alreadyGeneric[base] {
		return base, nil
	}

	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		s, err := translateType(a, typeFlags{})
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	if arity, ok := genericArity[base]; ok && len(args) < arity {
		args = append(args, make([]string, arity-len(args))...)
		for i := len(t.Args); i < arity; i++ {
			args[i] = "any"
		}
	}
	return base + "<" + strings.Join(args, ", ") + ">", nil
}

func translateIndexSignature(t *jsdoc.AppExpr) (string, error) {
	switch len(t.Args) {
	case 1:
		value, err := translateType(t.Args[0], typeFlags{})
		if err != nil {
			return "", err
		}
		return "{[index: string]: " + value + "}", nil
	case 2:
		index, err := translateType(t.Args[0], typeFlags{})
		if err != nil {
			return "", err
		}
		// Index signatures only admit string or number keys.
		if index != "string" && index != "number" {
			index = "string"
		}
		value, err := translateType(t.Args[1], typeFlags{})
		if err != nil {
			return "", err
		}
		return "{[index: " + index + "]: " + value + "}", nil
	default:
		return "", errors.Wrapf(errors.ErrArity, "Object with %d type arguments", len(t.Args))
	}
}

func translateFunc(t *jsdoc.FuncExpr, f typeFlags) (string, error) {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		rendered, err := renderParam(name, p.Type)
		if err != nil {
			return "", err
		}
		params[i] = rendered
	}

	result := "void"
	if t.Result != nil {
		s, err := translateType(t.Result, typeFlags{})
		if err != nil {
			return "", err
		}
		result = s
	}

	expr := "(" + strings.Join(params, ", ") + ") => " + result
	if f.unionMember {
		return "(" + expr + ")", nil
	}
	return expr, nil
}

// renderParam renders one `name: type` parameter entry, moving optionality
// and variadicity from the type onto the name.
func renderParam(name string, t jsdoc.TypeExpr) (string, error) {
	switch w := t.(type) {
	case nil:
		return name + ": any", nil
	case *jsdoc.OptionalExpr:
		s, err := translateType(w.Elem, typeFlags{})
		if err != nil {
			return "", err
		}
		return name + "?: " + s, nil
	case *jsdoc.RestExpr:
		s, err := translateType(w, typeFlags{})
		if err != nil {
			return "", err
		}
		return "..." + name + ": " + s, nil
	default:
		s, err := translateType(t, typeFlags{})
		if err != nil {
			return "", err
		}
		return name + ": " + s, nil
	}
}

func padAny(args []string, arity int) string {
	for len(args) < arity {
		args = append(args, "any")
	}
	return strings.Join(args, ", ")
}
