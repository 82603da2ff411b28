package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes shortest paths for each start", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cats := filepath.Join(dir, "categories.tsv")
		require.NoError(t, os.WriteFile(cats, []byte("B\tA\nC\tA\nD\tB\nD\tC\n"), 0o644))
		out := filepath.Join(dir, "paths.tsv")

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(), []string{cats, out, "A"}, &stdout, &stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "loaded 3 categories")

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t,
			"A\tA\t0\t\n"+
				"A\tB\t1\t\n"+
				"A\tC\t1\t\n",
			string(got))
	})

	t.Run("missing categories file", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(),
			[]string{filepath.Join(t.TempDir(), "nope.tsv"), filepath.Join(t.TempDir(), "out.tsv"), "A"},
			&stdout, &stderr)
		require.Error(t, err)
	})

	t.Run("unknown start category", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cats := filepath.Join(dir, "categories.tsv")
		require.NoError(t, os.WriteFile(cats, []byte("B\tA\n"), 0o644))

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(),
			[]string{cats, filepath.Join(dir, "out.tsv"), "Nope"}, &stdout, &stderr)
		require.Error(t, err)
	})
}
