// Package jsdoc models documentation comments: the recognized annotation
// tags and the embedded type expression grammar they carry.
//
// The type grammar is a closed tagged union. Translation code switches
// exhaustively over the node kinds; an unlisted kind is a bug, not an
// extension point.
package jsdoc

import "strings"

// TagKind identifies a recognized annotation tag.
type TagKind int

const (
	TagParam TagKind = iota
	TagEnum
	TagReturn
	TagPrivate
	TagType
	TagTemplate
	TagTypedef
	TagConstructor
	TagInterface
	TagExtends
	TagOverride

	// Classification-only tags: they influence function-vs-value
	// classification but their payload is never translated.
	TagConst
	TagDefine
	TagDict
	TagImplements
	TagStruct
)

var tagKindNames = map[string]TagKind{
	"param":       TagParam,
	"enum":        TagEnum,
	"return":      TagReturn,
	"returns":     TagReturn,
	"private":     TagPrivate,
	"type":        TagType,
	"template":    TagTemplate,
	"typedef":     TagTypedef,
	"constructor": TagConstructor,
	"interface":   TagInterface,
	"extends":     TagExtends,
	"override":    TagOverride,
	"const":       TagConst,
	"define":      TagDefine,
	"dict":        TagDict,
	"implements":  TagImplements,
	"struct":      TagStruct,
}

// String returns the canonical tag name.
func (k TagKind) String() string {
	for name, kind := range tagKindNames {
		if kind == k && name != "returns" {
			return name
		}
	}
	return "unknown"
}

// Tag is one structured field of a documentation comment.
type Tag struct {
	Kind TagKind
	Name string   // parameter name for @param, empty otherwise
	Type TypeExpr // embedded type expression, nil when the tag has none
	Text string   // trailing free-form description
}

// Info is a fully tokenized documentation comment.
type Info struct {
	Description string // free text before the first tag
	Tags        []Tag
	Raw         string // original comment text, for pass-through printing
}

// HasTag reports whether any tag of the given kind is present.
func (d *Info) HasTag(kind TagKind) bool {
	return d.Tag(kind) != nil
}

// Tag returns the first tag of the given kind, or nil.
func (d *Info) Tag(kind TagKind) *Tag {
	for i := range d.Tags {
		if d.Tags[i].Kind == kind {
			return &d.Tags[i]
		}
	}
	return nil
}

// TypeExpr is one node of the embedded type grammar.
type TypeExpr interface {
	typeExpr()
	String() string
}

// NameExpr is a (possibly dotted) type name reference.
type NameExpr struct {
	Name string
}

// AnyExpr is the wildcard type: `*`, or a bare `?`.
type AnyExpr struct{}

// VoidExpr collapses the void/null/undefined literals.
type VoidExpr struct{}

// OptionalExpr is a `T=` suffix (optional parameter type).
type OptionalExpr struct {
	Elem TypeExpr
}

// NullableExpr is a `?T` prefix.
type NullableExpr struct {
	Elem TypeExpr
}

// NonNullableExpr is a `!T` prefix.
type NonNullableExpr struct {
	Elem TypeExpr
}

// UnionExpr is `(A|B|...)`.
type UnionExpr struct {
	Members []TypeExpr
}

// RestExpr is a `...T` variadic prefix.
type RestExpr struct {
	Elem TypeExpr
}

// AppExpr is a generic application `Base.<A, B>` (or `Base<A, B>`).
type AppExpr struct {
	Base *NameExpr
	Args []TypeExpr
}

// FuncParam is one parameter of a function type. Name is usually empty:
// the grammar carries types only, names come from @param tags.
type FuncParam struct {
	Name string
	Type TypeExpr
}

// FuncExpr is `function(A, B): R`. Result is nil when unspecified.
type FuncExpr struct {
	Params []FuncParam
	Result TypeExpr
}

// RecordField is one `key: T` pair of a record type, in source order.
type RecordField struct {
	Key  string
	Type TypeExpr
}

// RecordExpr is `{key: T, ...}`.
type RecordExpr struct {
	Fields []RecordField
}

func (*NameExpr) typeExpr()        {}
func (*AnyExpr) typeExpr()         {}
func (*VoidExpr) typeExpr()        {}
func (*OptionalExpr) typeExpr()    {}
func (*NullableExpr) typeExpr()    {}
func (*NonNullableExpr) typeExpr() {}
func (*UnionExpr) typeExpr()       {}
func (*RestExpr) typeExpr()        {}
func (*AppExpr) typeExpr()         {}
func (*FuncExpr) typeExpr()        {}
func (*RecordExpr) typeExpr()      {}

func (e *NameExpr) String() string        { return e.Name }
func (e *AnyExpr) String() string         { return "*" }
func (e *VoidExpr) String() string        { return "void" }
func (e *OptionalExpr) String() string    { return e.Elem.String() + "=" }
func (e *NullableExpr) String() string    { return "?" + e.Elem.String() }
func (e *NonNullableExpr) String() string { return "!" + e.Elem.String() }

func (e *UnionExpr) String() string {
	parts := make([]string, len(e.Members))
	for i, m := range e.Members {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func (e *RestExpr) String() string { return "..." + e.Elem.String() }

func (e *AppExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Base.Name + ".<" + strings.Join(parts, ",") + ">"
}

func (e *FuncExpr) String() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.Type.String()
	}
	s := "function(" + strings.Join(parts, ",") + ")"
	if e.Result != nil {
		s += ":" + e.Result.String()
	}
	return s
}

func (e *RecordExpr) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Key + ":" + f.Type.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
