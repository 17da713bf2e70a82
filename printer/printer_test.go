package printer

import (
	"strings"
	"testing"

	"github.com/typebridge/typebridge/decl"
)

func TestPrintBody_NamespaceOrderAndSections(t *testing.T) {
	mod := decl.NewModule()

	ns := mod.Namespace("goog.dom")
	ns.Vars = append(ns.Vars, &decl.Var{Name: "COMPAT_MODE", Type: "boolean"})
	ns.Aliases = append(ns.Aliases, &decl.TypeAlias{Name: "Appendable", Type: "Node | string"})
	ns.Functions = append(ns.Functions, &decl.Function{
		Name:      "getElement",
		Signature: "(element: string | Element): Element",
	})

	later := mod.Namespace("goog.events")
	later.Enums = append(later.Enums, &decl.Enum{
		Name:     "EventType",
		BaseType: "string",
		Keys:     []string{"CLICK", "KEYDOWN"},
	})

	mod.Provides = []string{"goog.dom", "goog.events.EventType"}

	got := PrintBody(mod)
	want := `
declare namespace goog.dom {
  var COMPAT_MODE: boolean;
  type Appendable = Node | string;
  function getElement(element: string | Element): Element;
}

declare namespace goog.events {
  enum EventType /* string */ { CLICK, KEYDOWN }
}

// goog.provide: goog.dom
// goog.provide: goog.events.EventType
`
	if got != want {
		t.Errorf("PrintBody mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintBody_Class(t *testing.T) {
	mod := decl.NewModule()
	ns := mod.Namespace("goog.structs")
	ns.AddClass(&decl.Class{
		Name:       "Pool",
		Kind:       decl.KindClass,
		TypeParams: []string{"T"},
		Extends:    []string{"goog.Disposable"},
		Ctor:       "(opt_min?: number, opt_max?: number)",
		Doc:        "/**\n * A generic object pool.\n */",
		Properties: []*decl.Var{
			{Name: "DEFAULT_MAX", Type: "number", Static: true},
			{Name: "delay", Type: "number"},
		},
		Methods: []*decl.Function{
			{Name: "getObject", Signature: "(): T"},
			{Name: "create", Signature: "(count: number): Array<T>", Static: true},
		},
	})

	got := PrintBody(mod)
	want := `
declare namespace goog.structs {
  /**
  * A generic object pool.
  */
  class Pool<T> extends goog.Disposable {
    constructor(opt_min?: number, opt_max?: number);
    static DEFAULT_MAX: number;
    delay: number;
    getObject(): T;
    static create(count: number): Array<T>;
  }
}
`
	if got != want {
		t.Errorf("class output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintBody_InterfaceHasNoConstructor(t *testing.T) {
	mod := decl.NewModule()
	mod.Namespace("goog.events").AddClass(&decl.Class{
		Name:    "Listenable",
		Kind:    decl.KindInterface,
		Methods: []*decl.Function{{Name: "listen", Signature: "(type: string): void"}},
	})

	got := PrintBody(mod)
	if strings.Contains(got, "constructor") {
		t.Errorf("interface output contains a constructor:\n%s", got)
	}
	if !strings.Contains(got, "interface Listenable {") {
		t.Errorf("interface keyword missing:\n%s", got)
	}
}

func TestPrintBody_EnumAliasUsesImport(t *testing.T) {
	mod := decl.NewModule()
	mod.Namespace("goog.dom").Enums = append(mod.Namespace("goog.dom").Enums, &decl.Enum{
		Name:    "NodeType",
		AliasOf: "goog.internal.NodeType",
	})

	got := PrintBody(mod)
	if !strings.Contains(got, "import NodeType = goog.internal.NodeType;") {
		t.Errorf("enum alias not rendered as import:\n%s", got)
	}
}

func TestPrintBody_EmptyNamespaceOmitted(t *testing.T) {
	mod := decl.NewModule()
	mod.Namespace("goog.empty")
	ns := mod.Namespace("goog.full")
	ns.Vars = append(ns.Vars, &decl.Var{Name: "x", Type: "number"})

	got := PrintBody(mod)
	if strings.Contains(got, "goog.empty") {
		t.Errorf("empty namespace was emitted:\n%s", got)
	}
}

func TestPrint_Banner(t *testing.T) {
	got := Print(decl.NewModule())
	if !strings.HasPrefix(got, "// Code generated by typebridge") {
		t.Errorf("missing generated-file banner: %q", got)
	}
}

func TestPrintBody_Deterministic(t *testing.T) {
	build := func() *decl.Module {
		mod := decl.NewModule()
		for _, path := range []string{"goog.a", "goog.b", "goog.c"} {
			ns := mod.Namespace(path)
			ns.Vars = append(ns.Vars, &decl.Var{Name: "v", Type: "string"})
		}
		return mod
	}
	first := PrintBody(build())
	for i := 0; i < 10; i++ {
		if got := PrintBody(build()); got != first {
			t.Fatalf("iteration %d differs:\n%s", i, got)
		}
	}
}
