package annowiki_test

import (
	"testing"

	"github.com/fwojciec/annowiki"
	"github.com/stretchr/testify/assert"
)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	c := annowiki.NewCleaner()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text is unchanged",
			in:   "This is plain text with nothing special about it.",
			want: "This is plain text with nothing special about it.",
		},
		{
			name: "strips comments",
			in:   "before<!-- hidden -->after",
			want: "beforeafter",
		},
		{
			name: "strips multi-line comments",
			in:   "a<!--\nhidden\nstill hidden\n-->b",
			want: "ab",
		},
		{
			name: "drops garbage blocks with contents",
			in:   "a<ref>citation junk</ref>b",
			want: "ab",
		},
		{
			name: "unwraps formatting tags keeping contents",
			in:   `x<span style="color:red">y</span>z`,
			want: "xyz",
		},
		{
			name: "drops self-closing void tags",
			in:   "a<br />b",
			want: "ab",
		},
		{
			name: "drops malformed void tags",
			in:   "a<br>b",
			want: "ab",
		},
		{
			name: "replaces math blocks with numbered tokens",
			in:   "see <math>x^2</math> and <math>y</math> now",
			want: "see formula_1 and formula_2 now",
		},
		{
			name: "replaces code blocks with numbered tokens",
			in:   "run <code>ls -la</code> first",
			want: "run codice_1 first",
		},
		{
			name: "removes templates",
			in:   "a {{infobox|name=X}} b",
			want: "a b",
		},
		{
			name: "removes nested templates",
			in:   "a {{outer|{{inner|x}}}} b",
			want: "a b",
		},
		{
			name: "resolves piped wikilinks to anchors",
			in:   "see [[Foo Bar|the foo]] now",
			want: `see <a href="Foo_Bar">the foo</a> now`,
		},
		{
			name: "resolves plain wikilinks to anchors",
			in:   "eat an [[apple]] today",
			want: `eat an <a href="Apple">apple</a> today`,
		},
		{
			name: "strips allowed cross-wiki prefixes",
			in:   "see [[w:Foo|foo]] now",
			want: `see <a href="Foo">foo</a> now`,
		},
		{
			name: "drops image links entirely",
			in:   "a [[Image:foo.png|thumb|caption]] b",
			want: "a b",
		},
		{
			name: "drops cross-language links",
			in:   "a [[fr:Pomme]] b",
			want: "a b",
		},
		{
			name: "drops external links",
			in:   "text [http://example.com some label] more",
			want: "text more",
		},
		{
			name: "unwraps bold and quotes italics",
			in:   "this is '''bold''' and ''italic'' text",
			want: `this is bold and "italic" text`,
		},
		{
			name: "decodes double-escaped named entities",
			in:   "caf&amp;eacute; au lait",
			want: "café au lait",
		},
		{
			name: "decodes named entities",
			in:   "caf&eacute; au lait",
			want: "café au lait",
		},
		{
			name: "keeps unknown named entities",
			in:   "a &nosuch; b",
			want: "a &nosuch; b",
		},
		{
			name: "decodes decimal numeric entities",
			in:   "caf&#233; au lait",
			want: "café au lait",
		},
		{
			name: "drops astral numeric entities",
			in:   "a&#70000;b",
			want: "ab",
		},
		{
			name: "converts angle quotes",
			in:   "he said <<hi>> ok",
			want: "he said «hi» ok",
		},
		{
			name: "collapses runs of dots",
			in:   "wait.....",
			want: "wait...",
		},
		{
			name: "collapses whitespace and fixes punctuation",
			in:   "a\tb   c , d .",
			want: "a b c, d.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := c.Clean(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleaner_Clean_categories(t *testing.T) {
	t.Parallel()

	c := annowiki.NewCleaner()

	t.Run("collects category targets without linking them", func(t *testing.T) {
		t.Parallel()

		got, categories := c.Clean("x\n[[Category:Fruits]]\n[[Category:Plants]]\ny")

		assert.Equal(t, []string{"Category:Fruits", "Category:Plants"}, categories)
		assert.NotContains(t, got, "Category")
		assert.NotContains(t, got, "<a")
	})

	t.Run("deduplicates repeated category targets", func(t *testing.T) {
		t.Parallel()

		_, categories := c.Clean("[[Category:Fruits]]\n[[Category:Fruits]]")

		assert.Equal(t, []string{"Category:Fruits"}, categories)
	})

	t.Run("plain text yields no categories", func(t *testing.T) {
		t.Parallel()

		_, categories := c.Clean("nothing to see here")

		assert.Empty(t, categories)
	})
}

func TestCleaner_Clean_isIdempotent(t *testing.T) {
	t.Parallel()

	c := annowiki.NewCleaner()

	in := "Anarchism is a political philosophy.\nIt questions established authority."
	once, _ := c.Clean(in)
	twice, _ := c.Clean(once)

	assert.Equal(t, in, once)
	assert.Equal(t, once, twice)
}
