package annowiki

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultURLPrefix is the base URL prepended to canonical page titles.
const DefaultURLPrefix = "http://en.wikipedia.org/wiki/"

// Config holds the extraction policy. It is immutable once handed to an
// Extractor and is shared by all workers without synchronization.
type Config struct {
	// URLPrefix is the base URL for canonical article URLs. Must end in "/".
	URLPrefix string `yaml:"url_prefix"`

	// KeepAnchors retains annotations whose target contains a fragment.
	KeepAnchors bool `yaml:"keep_anchors"`

	// DropLists drops bulleted list lines instead of keeping their text.
	DropLists bool `yaml:"drop_lists"`

	// DropEnumerations drops numbered list lines instead of keeping their text.
	DropEnumerations bool `yaml:"drop_enumerations"`

	// DropIndents drops indented lines instead of keeping their text.
	DropIndents bool `yaml:"drop_indents"`

	// DropTables drops residual table delimiter lines instead of keeping
	// their text.
	DropTables bool `yaml:"drop_tables"`
}

// DefaultConfig returns the extraction policy used when no overrides are given.
func DefaultConfig() Config {
	return Config{URLPrefix: DefaultURLPrefix}
}

// Validate returns an error if the configuration is unusable.
func (c Config) Validate() error {
	if c.URLPrefix == "" {
		return Errorf(EINVALID, "url prefix required")
	}
	if !strings.HasSuffix(c.URLPrefix, "/") {
		return Errorf(EINVALID, "url prefix %q must end with '/'", c.URLPrefix)
	}
	return nil
}

// LoadConfig reads a YAML extraction policy from path. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, Errorf(ENOTFOUND, "read config %s: %v", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, Errorf(EINVALID, "parse config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
