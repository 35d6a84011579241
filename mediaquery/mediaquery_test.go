package mediaquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssobj/mediaquery"
)

func TestParse_TypeOnly(t *testing.T) {
	queries, err := mediaquery.Parse("screen")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "screen", queries[0].Type)
	assert.False(t, queries[0].Inverse)
	assert.Empty(t, queries[0].Expressions)
}

func TestParse_ExpressionOnly(t *testing.T) {
	queries, err := mediaquery.Parse("(min-width: 100px)")
	require.NoError(t, err)
	require.Len(t, queries, 1)

	q := queries[0]
	assert.Equal(t, "all", q.Type, "type defaults to all")
	require.Len(t, q.Expressions, 1)
	assert.Equal(t, mediaquery.Expression{Modifier: "min", Feature: "width", Value: "100px"}, q.Expressions[0])
}

func TestParse_TypeAndExpressions(t *testing.T) {
	queries, err := mediaquery.Parse("screen and (orientation: landscape) and (max-height: 50em)")
	require.NoError(t, err)
	require.Len(t, queries, 1)

	q := queries[0]
	assert.Equal(t, "screen", q.Type)
	require.Len(t, q.Expressions, 2)
	assert.Equal(t, mediaquery.Expression{Feature: "orientation", Value: "landscape"}, q.Expressions[0])
	assert.Equal(t, mediaquery.Expression{Modifier: "max", Feature: "height", Value: "50em"}, q.Expressions[1])
}

func TestParse_Not(t *testing.T) {
	queries, err := mediaquery.Parse("not screen")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.True(t, queries[0].Inverse)
	assert.Equal(t, "screen", queries[0].Type)
}

func TestParse_Only(t *testing.T) {
	queries, err := mediaquery.Parse("only screen and (width: 320px)")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "screen", queries[0].Type)
	require.Len(t, queries[0].Expressions, 1)
}

func TestParse_Alternatives(t *testing.T) {
	queries, err := mediaquery.Parse("screen and (min-width: 100px), print")
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, "screen", queries[0].Type)
	assert.Equal(t, "print", queries[1].Type)
}

func TestParse_BooleanFeature(t *testing.T) {
	queries, err := mediaquery.Parse("(orientation)")
	require.NoError(t, err)
	require.Len(t, queries, 1)
	require.Len(t, queries[0].Expressions, 1)
	assert.Equal(t, mediaquery.Expression{Feature: "orientation"}, queries[0].Expressions[0])
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{
		"screen and (: 100px)",
		"(min-width:)",
		"(min-width: 100px",
		"not",
	} {
		_, err := mediaquery.Parse(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
}
