package translate

import (
	"strings"

	"github.com/typebridge/typebridge/jsdoc"
)

// tsReserved lists TypeScript identifiers that cannot be used as parameter
// names. Colliding annotation names get a trailing underscore.
var tsReserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "implements": true, "interface": true,
	"let": true, "package": true, "private": true, "protected": true,
	"public": true, "static": true, "yield": true,
}

func sanitizeParamName(name string) string {
	if tsReserved[name] {
		return name + "_"
	}
	return name
}

// BuildSignature merges an ordered tag list into a call signature like
// "(a: string, b?: number): boolean" plus the declared template parameter
// names. The return type defaults to void.
func BuildSignature(tags []jsdoc.Tag) (string, []string, error) {
	params, err := buildParams(tags)
	if err != nil {
		return "", nil, err
	}

	result := "void"
	for _, tag := range tags {
		if tag.Kind == jsdoc.TagReturn && tag.Type != nil {
			s, err := TranslateType(tag.Type)
			if err != nil {
				return "", nil, err
			}
			result = s
			break
		}
	}

	return "(" + strings.Join(params, ", ") + "): " + result, templateNames(tags), nil
}

// BuildConstructorSignature is the constructor variant: return and template
// tags are ignored entirely, since constructors declare no result type.
func BuildConstructorSignature(tags []jsdoc.Tag) (string, error) {
	params, err := buildParams(tags)
	if err != nil {
		return "", err
	}
	return "(" + strings.Join(params, ", ") + ")", nil
}

func buildParams(tags []jsdoc.Tag) ([]string, error) {
	var params []string
	for _, tag := range tags {
		if tag.Kind != jsdoc.TagParam {
			continue
		}
		rendered, err := renderParam(sanitizeParamName(tag.Name), tag.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, rendered)
	}
	return params, nil
}

// templateNames extracts template parameter names verbatim from the
// comma-separated text of template tags.
func templateNames(tags []jsdoc.Tag) []string {
	var names []string
	for _, tag := range tags {
		if tag.Kind != jsdoc.TagTemplate {
			continue
		}
		for _, part := range strings.Split(tag.Text, ",") {
			if name := strings.TrimSpace(part); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
