package annowiki_test

import (
	"testing"

	"github.com/fwojciec/annowiki"
	"github.com/stretchr/testify/assert"
)

func TestPageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		title  string
		want   string
	}{
		{
			name:   "spaces become underscores",
			prefix: "http://en.wikipedia.org/wiki/",
			title:  "Computer science",
			want:   "http://en.wikipedia.org/wiki/Computer_science",
		},
		{
			name:   "first letter upper-cased",
			prefix: "http://en.wikipedia.org/wiki/",
			title:  "anarchism",
			want:   "http://en.wikipedia.org/wiki/Anarchism",
		},
		{
			name:   "already canonical",
			prefix: "http://en.wikipedia.org/wiki/",
			title:  "Anarchism",
			want:   "http://en.wikipedia.org/wiki/Anarchism",
		},
		{
			name:   "multi-byte first rune",
			prefix: "http://en.wikipedia.org/wiki/",
			title:  "étienne",
			want:   "http://en.wikipedia.org/wiki/Étienne",
		},
		{
			name:   "empty prefix keeps canonical title only",
			prefix: "",
			title:  "Foo Bar",
			want:   "Foo_Bar",
		},
		{
			name:   "empty title returns prefix",
			prefix: "http://en.wikipedia.org/wiki/",
			title:  "",
			want:   "http://en.wikipedia.org/wiki/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, annowiki.PageURL(tt.prefix, tt.title))
		})
	}
}
