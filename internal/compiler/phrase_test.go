package compiler

import (
	"testing"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func yamlValue(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))
	return v
}

func TestParsePhrase(t *testing.T) {
	cat, dog := phrase.Word("cat"), phrase.Word("dog")

	tests := []struct {
		src  string
		want phrase.Escaped
	}{
		{`cat`, phrase.Prefix("cat")},
		{`"/c[ao]t/i"`, phrase.Compose(phrase.Source("c[ao]t"))},
		{`{exact: cat}`, phrase.Exact("cat")},
		{`{prefix: cat}`, phrase.Prefix("cat")},
		{`{postfix: cat}`, phrase.Postfix("cat")},
		{`{open: cat}`, phrase.Open("cat")},
		{`{raw: "/c.t/"}`, phrase.Compose(phrase.Source("c.t"))},
		{`{or: [cat, dog]}`, phrase.Alt(cat, dog)},
		{`{alt: [cat, dog, {exact: cow}]}`, phrase.Alt(cat, dog, phrase.Exact("cow"))},
		{`{and: [cat, dog]}`, phrase.And(cat, dog)},
		{`{not: [cat, dog]}`, phrase.Not(cat, dog)},
		{`{with: [cat, dog]}`, phrase.With(cat, dog)},
		{`{without: [cat, dog]}`, phrase.Without(cat, dog)},
		{`{near: [cat, dog]}`, phrase.Near()(cat, dog)},
		{`{near: [cat, dog], distance: 3}`, phrase.Near(phrase.WithDistance(phrase.Within(3)))(cat, dog)},
		{`{near: [cat, dog], distance: [2, 5], sameLine: false}`,
			phrase.Near(phrase.WithDistance(phrase.Between(2, 5)), phrase.SameLine(false))(cat, dog)},
		{`{far: [cat, dog], distance: 4}`, phrase.Far(phrase.WithDistance(phrase.Within(4)))(cat, dog)},
		{`{and: [{with: [cat, dog]}, cow]}`, phrase.And(phrase.With(cat, dog), phrase.Word("cow"))},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p, err := ParsePhrase(yamlValue(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, phrase.Compose(p))
		})
	}
}

func TestParsePhrase_Errors(t *testing.T) {
	tests := []struct {
		src     string
		wantErr error
		wantMsg string
	}{
		{`42`, ErrSyntax, ""},
		{`{}`, ErrSyntax, ""},
		{`{exact: cat, prefix: cat}`, ErrSyntax, ""},
		{`{exact: [cat]}`, ErrSyntax, ""},
		{`{xor: [cat, dog]}`, ErrUnknownOperator, ""},
		{`{and: [cat]}`, ErrSyntax, ""},
		{`{and: cat}`, ErrSyntax, "and: invalid syntax"},
		{`{or: [cat, 42]}`, ErrSyntax, "or[1]: invalid syntax"},
		{`{near: [cat, dog], distance: "far"}`, phrase.ErrDistance, ""},
		{`{near: [cat, dog], sameLine: "yes"}`, ErrSyntax, ""},
		{`{raw: "c.t"}`, phrase.ErrFormat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParsePhrase(yamlValue(t, tt.src))
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseOp(t *testing.T) {
	op, err := ParseOp("")
	require.NoError(t, err)
	assert.Nil(t, op)

	op, err = ParseOp("Near")
	require.NoError(t, err)
	assert.Equal(t, phrase.Near()(phrase.Word("a"), phrase.Word("b")), op.Combine(phrase.Word("a"), phrase.Word("b")))

	_, err = ParseOp("xor")
	assert.ErrorIs(t, err, ErrUnknownOperator)
}
