package jsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComment_DescriptionAndTags(t *testing.T) {
	info, err := ParseComment(`/**
 * Creates a DOM helper for the given document.
 *
 * @param {Document=} opt_document Document to associate.
 * @return {!goog.dom.DomHelper} The helper.
 */`)
	require.NoError(t, err)

	assert.Equal(t, "Creates a DOM helper for the given document.", info.Description)
	require.Len(t, info.Tags, 2)

	param := info.Tags[0]
	assert.Equal(t, TagParam, param.Kind)
	assert.Equal(t, "opt_document", param.Name)
	assert.Equal(t, "Document to associate.", param.Text)
	require.IsType(t, &OptionalExpr{}, param.Type)

	ret := info.Tags[1]
	assert.Equal(t, TagReturn, ret.Kind)
	require.IsType(t, &NonNullableExpr{}, ret.Type)
}

func TestParseComment_UnknownTagsDropped(t *testing.T) {
	info, err := ParseComment(`/**
 * @see goog.dom.getElement
 * @deprecated Use something else.
 * @type {string}
 */`)
	require.NoError(t, err)
	require.Len(t, info.Tags, 1)
	assert.Equal(t, TagType, info.Tags[0].Kind)
}

func TestParseComment_MultilineBraces(t *testing.T) {
	info, err := ParseComment(`/**
 * @typedef {{
 *   name: string,
 *   count: number
 * }}
 */`)
	require.NoError(t, err)
	require.Len(t, info.Tags, 1)

	rec, ok := info.Tags[0].Type.(*RecordExpr)
	require.True(t, ok, "expected record type, got %T", info.Tags[0].Type)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "name", rec.Fields[0].Key)
	assert.Equal(t, "count", rec.Fields[1].Key)
}

func TestParseComment_ReturnsAlias(t *testing.T) {
	info, err := ParseComment(`/**
 * @returns {boolean} Whether it worked.
 */`)
	require.NoError(t, err)
	require.Len(t, info.Tags, 1)
	assert.Equal(t, TagReturn, info.Tags[0].Kind)
}

func TestParseComment_TemplateText(t *testing.T) {
	info, err := ParseComment(`/**
 * @constructor
 * @template KEY, VALUE
 */`)
	require.NoError(t, err)
	tmpl := info.Tag(TagTemplate)
	require.NotNil(t, tmpl)
	assert.Equal(t, "KEY, VALUE", tmpl.Text)
	assert.True(t, info.HasTag(TagConstructor))
}

func TestParseComment_NotADocBlock(t *testing.T) {
	_, err := ParseComment("/* plain block comment */")
	assert.Error(t, err)
}

func TestParseComment_MalformedTypeFatal(t *testing.T) {
	_, err := ParseComment(`/**
 * @type {Array.<string}
 */`)
	assert.Error(t, err)
}

func TestParseType_Errors(t *testing.T) {
	for _, src := range []string{"", "Array.<", "{a: }", "foo bar"} {
		_, err := ParseType(src)
		assert.Error(t, err, "ParseType(%q)", src)
	}
}

func TestParseType_Shapes(t *testing.T) {
	expr, err := ParseType("function(string, number=): boolean")
	require.NoError(t, err)
	fn, ok := expr.(*FuncExpr)
	require.True(t, ok)
	require.Len(t, fn.Params, 2)
	assert.IsType(t, &OptionalExpr{}, fn.Params[1].Type)
	assert.IsType(t, &NameExpr{}, fn.Result)

	expr, err = ParseType("(string|Array.<number>)")
	require.NoError(t, err)
	union, ok := expr.(*UnionExpr)
	require.True(t, ok)
	require.Len(t, union.Members, 2)
	app, ok := union.Members[1].(*AppExpr)
	require.True(t, ok)
	assert.Equal(t, "Array", app.Base.Name)
}
