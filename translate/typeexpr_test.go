package translate

import (
	"testing"

	"github.com/typebridge/typebridge/jsdoc"
)

// mustParse builds a type expression from its annotation text.
func mustParse(t *testing.T, src string) jsdoc.TypeExpr {
	t.Helper()
	expr, err := jsdoc.ParseType(src)
	if err != nil {
		t.Fatalf("ParseType(%q): %v", src, err)
	}
	return expr
}

func mustTranslate(t *testing.T, src string) string {
	t.Helper()
	out, err := TranslateType(mustParse(t, src))
	if err != nil {
		t.Fatalf("TranslateType(%q): %v", src, err)
	}
	return out
}

func TestTranslateType_Table(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		// Literals and wildcards
		{"*", "any"},
		{"?", "any"},
		{"void", "void"},
		{"null", "void"},
		{"undefined", "void"},

		// Legacy renames
		{"Boolean", "boolean"},
		{"Number", "number"},
		{"String", "string"},

		// Nullability erasure
		{"?string", "string"},
		{"!Object", "Object"},
		{"?goog.dom.DomHelper", "goog.dom.DomHelper"},

		// Optional wrapper is erased at the type level
		{"string=", "string"},

		// Bare containers get padded to full arity
		{"Array", "Array<any>"},
		{"Map", "Map<any, any>"},
		{"Promise", "Promise<any>"},

		// Generic applications
		{"Array.<string>", "Array<string>"},
		{"Array<string>", "Array<string>"},
		{"Map.<string>", "Map<string, any>"},
		{"Set.<!goog.Uri>", "Set<goog.Uri>"},

		// Object applications become index signatures
		{"Object.<number>", "{[index: string]: number}"},
		{"Object.<string, number>", "{[index: string]: number}"},
		{"Object.<number, string>", "{[index: number]: string}"},
		{"Object.<goog.Uri, string>", "{[index: string]: string}"},

		// Function is generic enough already
		{"Function", "Function"},
		{"Function.<string>", "Function"},

		// Unions
		{"string|number", "string | number"},
		{"(string|null)", "string | void"},

		// Function types
		{"function()", "() => void"},
		{"function(string): boolean", "(arg0: string) => boolean"},
		{"function(string=, number)", "(arg0?: string, arg1: number) => void"},
		{"function(...string)", "(...arg0: string[]) => void"},

		// Rest
		{"...string", "string[]"},
		{"...Array.<number>", "number[]"},
		{"...(string|number)", "(string | number)[]"},

		// Records
		{"{a: string, b: number}", "{a: string, b: number}"},
		{"{a}", "{a: any}"},

		// Nesting
		{"Array.<Array.<string>>", "Array<Array<string>>"},
		{"function(this: goog.Uri, string): void", "(arg0: string) => void"},
	}

	for _, tc := range cases {
		got := mustTranslate(t, tc.in)
		if got != tc.want {
			t.Errorf("TranslateType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTranslateType_Deterministic(t *testing.T) {
	expr := mustParse(t, "function(Array.<string>, Object.<number>): (string|null)")
	first, err := TranslateType(expr)
	if err != nil {
		t.Fatalf("TranslateType: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := TranslateType(expr)
		if err != nil {
			t.Fatalf("TranslateType: %v", err)
		}
		if again != first {
			t.Fatalf("translation not deterministic: %q then %q", first, again)
		}
	}
}

func TestTranslateType_NullabilityErasure(t *testing.T) {
	for _, base := range []string{"string", "goog.Uri", "Array.<number>"} {
		plain := mustTranslate(t, base)
		if got := mustTranslate(t, "?"+base); got != plain {
			t.Errorf("nullable %q = %q, want %q", base, got, plain)
		}
		if got := mustTranslate(t, "!"+base); got != plain {
			t.Errorf("non-nullable %q = %q, want %q", base, got, plain)
		}
	}
}

func TestTranslateType_FunctionInUnionParenthesized(t *testing.T) {
	got := mustTranslate(t, "(function(): void)|string")
	want := "(() => void) | string"
	if got != want {
		t.Errorf("union with function member = %q, want %q", got, want)
	}

	// The same union as a bare record field type carries no extra parens.
	got = mustTranslate(t, "{cb: ((function(): void)|string)}")
	want = "{cb: (() => void) | string}"
	if got != want {
		t.Errorf("record field union = %q, want %q", got, want)
	}
}

func TestTranslateType_ObjectArityFatal(t *testing.T) {
	if _, err := TranslateType(mustParse(t, "Object.<string, number, boolean>")); err == nil {
		t.Fatal("expected error for Object with three type arguments")
	}
}
