package config_test

import (
	"strings"
	"testing"

	"github.com/treecrypt/treecrypt/internal/config"
)

func valid() *config.Config {
	return &config.Config{
		Key:      strings.Repeat("ab", 32),
		Parallel: 4,
		Paths:    []string{"."},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"valid", func(*config.Config) {}, false},
		{"key file instead of key", func(c *config.Config) { c.Key = ""; c.KeyFile = "key.hex" }, false},
		{"no key source", func(c *config.Config) { c.Key = "" }, true},
		{"both key sources", func(c *config.Config) { c.KeyFile = "key.hex" }, true},
		{"short key", func(c *config.Config) { c.Key = strings.Repeat("ab", 16) }, true},
		{"non-hex key", func(c *config.Config) { c.Key = strings.Repeat("zz", 32) }, true},
		{"zero parallel", func(c *config.Config) { c.Parallel = 0 }, true},
		{"no paths", func(c *config.Config) { c.Paths = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
