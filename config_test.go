package annowiki_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/annowiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, annowiki.DefaultConfig().Validate())
	})

	t.Run("missing prefix", func(t *testing.T) {
		t.Parallel()

		err := annowiki.Config{}.Validate()
		require.Error(t, err)
		assert.Equal(t, annowiki.EINVALID, annowiki.ErrorCode(err))
	})

	t.Run("prefix without trailing slash", func(t *testing.T) {
		t.Parallel()

		err := annowiki.Config{URLPrefix: "http://example.com/wiki"}.Validate()
		require.Error(t, err)
		assert.Equal(t, annowiki.EINVALID, annowiki.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("absent fields keep defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("drop_lists: true\n"), 0o644))

		cfg, err := annowiki.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, annowiki.DefaultURLPrefix, cfg.URLPrefix)
		assert.True(t, cfg.DropLists)
		assert.False(t, cfg.DropTables)
	})

	t.Run("overrides prefix", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path,
			[]byte("url_prefix: http://de.wikipedia.org/wiki/\nkeep_anchors: true\n"), 0o644))

		cfg, err := annowiki.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "http://de.wikipedia.org/wiki/", cfg.URLPrefix)
		assert.True(t, cfg.KeepAnchors)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := annowiki.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, annowiki.ENOTFOUND, annowiki.ErrorCode(err))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("url_prefix: [broken\n"), 0o644))

		_, err := annowiki.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, annowiki.EINVALID, annowiki.ErrorCode(err))
	})

	t.Run("invalid prefix in file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("url_prefix: \"\"\n"), 0o644))

		_, err := annowiki.LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, annowiki.EINVALID, annowiki.ErrorCode(err))
	})
}
