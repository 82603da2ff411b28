package main

import (
	"testing"

	"github.com/fwojciec/annowiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseByteSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "upper K suffix", in: "500K", want: 500 * 1024},
		{name: "lower k suffix", in: "200k", want: 200 * 1024},
		{name: "upper M suffix", in: "1M", want: 1024 * 1024},
		{name: "lower m suffix", in: "2m", want: 2 * 1024 * 1024},
		{name: "bare bytes", in: "204800", want: 204800},
		{name: "not a number", in: "big", wantErr: true},
		{name: "suffix only", in: "K", wantErr: true},
		{name: "below minimum", in: "100K", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseByteSize(tt.in)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, annowiki.EINVALID, annowiki.ErrorCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
