// Package printer renders a declaration model as TypeScript ambient
// declaration text. It is a pure serializer: everything it emits was decided
// by the translation pass, and iteration follows the model's recorded order
// so output is deterministic.
package printer

import (
	"fmt"
	"strings"

	"github.com/typebridge/typebridge/decl"
)

const indent = "  "

// Print renders the full declaration file for one module: a generated-file
// banner, one `declare namespace` block per namespace in first-seen order,
// and the provide banner.
func Print(mod *decl.Module) string {
	return "// Code generated by typebridge from annotated sources. DO NOT EDIT.\n" + PrintBody(mod)
}

// PrintBody renders the namespace blocks and provide banner without the
// generated-file header, for callers aggregating several modules into one
// combined declaration file.
func PrintBody(mod *decl.Module) string {
	var sb strings.Builder

	for _, path := range mod.Order {
		ns := mod.Namespaces[path]
		if emptyNamespace(ns) {
			continue
		}
		sb.WriteString("\n")
		printNamespace(&sb, ns)
	}

	if len(mod.Provides) > 0 {
		sb.WriteString("\n")
		for _, p := range mod.Provides {
			fmt.Fprintf(&sb, "// goog.provide: %s\n", p)
		}
	}

	return sb.String()
}

func emptyNamespace(ns *decl.Namespace) bool {
	return len(ns.Vars) == 0 && len(ns.Aliases) == 0 && len(ns.Functions) == 0 &&
		len(ns.Enums) == 0 && len(ns.Classes) == 0
}

func printNamespace(sb *strings.Builder, ns *decl.Namespace) {
	fmt.Fprintf(sb, "declare namespace %s {\n", ns.Path)

	for _, v := range ns.Vars {
		fmt.Fprintf(sb, "%svar %s: %s;\n", indent, v.Name, v.Type)
	}
	for _, a := range ns.Aliases {
		fmt.Fprintf(sb, "%stype %s = %s;\n", indent, a.Name, a.Type)
	}
	for _, e := range ns.Enums {
		printEnum(sb, e)
	}
	for _, f := range ns.Functions {
		fmt.Fprintf(sb, "%sfunction %s%s%s;\n", indent, f.Name, typeParams(f.TypeParams), f.Signature)
	}
	for _, c := range ns.Classes {
		printClass(sb, c)
	}

	sb.WriteString("}\n")
}

func printEnum(sb *strings.Builder, e *decl.Enum) {
	if e.AliasOf != "" {
		fmt.Fprintf(sb, "%simport %s = %s;\n", indent, e.Name, e.AliasOf)
		return
	}
	fmt.Fprintf(sb, "%senum %s /* %s */ { %s }\n", indent, e.Name, e.BaseType, strings.Join(e.Keys, ", "))
}

func printClass(sb *strings.Builder, c *decl.Class) {
	printDoc(sb, c.Doc)

	keyword := "class"
	if c.Kind == decl.KindInterface {
		keyword = "interface"
	}
	heritage := ""
	if len(c.Extends) > 0 {
		heritage = " extends " + strings.Join(c.Extends, ", ")
	}
	fmt.Fprintf(sb, "%s%s %s%s%s {\n", indent, keyword, c.Name, typeParams(c.TypeParams), heritage)

	inner := indent + indent
	if c.Ctor != "" {
		fmt.Fprintf(sb, "%sconstructor%s;\n", inner, c.Ctor)
	}
	for _, p := range c.Properties {
		fmt.Fprintf(sb, "%s%s%s: %s;\n", inner, staticPrefix(p.Static), p.Name, p.Type)
	}
	for _, m := range c.Methods {
		fmt.Fprintf(sb, "%s%s%s%s%s;\n", inner, staticPrefix(m.Static), m.Name, typeParams(m.TypeParams), m.Signature)
	}

	fmt.Fprintf(sb, "%s}\n", indent)
}

// printDoc re-indents the originating documentation comment so it sits above
// the class declaration it came from.
func printDoc(sb *strings.Builder, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.TrimSpace(line))
	}
}

func typeParams(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func staticPrefix(static bool) string {
	if static {
		return "static "
	}
	return ""
}
