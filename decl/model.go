// Package decl holds the declaration model built by one translation pass:
// namespaces keyed by dotted path, each owning its variables, type aliases,
// functions, enumerations and classes in source order.
//
// The model is mutated only by the classifier during the pass and is
// read-only once handed to the printer. Member attachment assumes a class is
// registered before any statement naming it as an owner is visited; that
// ordering is a contract on the input corpus, not something the pass
// enforces or repairs.
package decl

// Module is the complete declaration model of one source module.
type Module struct {
	// Order lists namespace paths in first-seen order; the printer follows
	// it so output never depends on map iteration.
	Order      []string
	Namespaces map[string]*Namespace

	// Provides is the export list, collected independently of the
	// declaration entries. Duplicates are preserved as encountered.
	Provides []string
}

// NewModule returns an empty declaration model.
func NewModule() *Module {
	return &Module{Namespaces: make(map[string]*Namespace)}
}

// Namespace returns the entry for path, creating and ordering it on first use.
func (m *Module) Namespace(path string) *Namespace {
	if ns, ok := m.Namespaces[path]; ok {
		return ns
	}
	ns := &Namespace{Path: path, classIndex: make(map[string]*Class)}
	m.Namespaces[path] = ns
	m.Order = append(m.Order, path)
	return ns
}

// Namespace is one dotted-path namespace and its declarations, each list in
// source order.
type Namespace struct {
	Path      string
	Vars      []*Var
	Aliases   []*TypeAlias
	Functions []*Function
	Enums     []*Enum
	Classes   []*Class

	classIndex map[string]*Class
}

// AddClass registers a class entry and indexes it for member attachment.
func (n *Namespace) AddClass(c *Class) {
	n.Classes = append(n.Classes, c)
	n.classIndex[c.Name] = c
}

// Class returns the registered class of that name, or nil. Members of an
// unregistered (private) class have nowhere to attach and are dropped by
// the caller.
func (n *Namespace) Class(name string) *Class {
	return n.classIndex[name]
}

// ClassKind discriminates class from interface entries.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
)

// Class is a class or interface entry.
type Class struct {
	Name       string
	Kind       ClassKind
	Ctor       string // constructor call-signature; empty for interfaces
	Extends    []string
	TypeParams []string
	Methods    []*Function
	Properties []*Var
	Doc        string // originating documentation comment, passed through
}

// Function is a free function or a method, depending on its owner.
type Function struct {
	Name       string
	Signature  string // e.g. "(a: string, b?: number): boolean"
	TypeParams []string
	Static     bool
	Doc        string
}

// Enum is an enumeration entry. AliasOf is set instead of Keys when the
// declaration re-exports another enumeration.
type Enum struct {
	Name     string
	BaseType string
	Keys     []string // member keys in source property order
	AliasOf  string
	Doc      string
}

// TypeAlias is a named alias for a translated type expression.
type TypeAlias struct {
	Name string
	Type string
	Doc  string
}

// Var is a namespace variable or a class property.
type Var struct {
	Name   string
	Type   string
	Static bool
	Doc    string
}
