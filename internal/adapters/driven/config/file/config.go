package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/logger"
)

// Format is the encoding of a configuration document.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Config is the content of a boardsync configuration file.
//
// TOML:
//
//	[github]
//	base_url = "https://ghe.example.com/api"
//
//	[[projects]]
//	label = "bug"
//	projectNumber = 3
//
// JSON accepts the same object, or a bare array of project rows as used by
// the Actions "config" input.
type Config struct {
	GitHub   GitHubSettings          `toml:"github" json:"github"`
	Projects []domain.ProjectMapping `toml:"projects" json:"projects"`
}

// GitHubSettings are optional client settings stored alongside the mappings.
// Credentials are never read from configuration files.
type GitHubSettings struct {
	BaseURL  string   `toml:"base_url" json:"baseUrl"`
	Features []string `toml:"features" json:"features"`
}

// FormatForPath picks the format from a file extension. Anything that is
// not .toml is read as JSON.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration document. Empty input is an empty table.
// Rows keep their order and are not deduplicated.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := &Config{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return cfg, nil
	}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(trimmed, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse TOML config: %v", domain.ErrInvalidInput, err)
		}
	case FormatJSON:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &cfg.Projects); err != nil {
				return nil, fmt.Errorf("%w: parse JSON config: %v", domain.ErrInvalidInput, err)
			}
		} else if err := json.Unmarshal(trimmed, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse JSON config: %v", domain.ErrInvalidInput, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown config format %q", domain.ErrInvalidInput, format)
	}

	warnUnmatchable(cfg.Projects)
	return cfg, nil
}

// ParseMappings decodes the Actions "config" input: a JSON array of rows.
func ParseMappings(input string) ([]domain.ProjectMapping, error) {
	cfg, err := Parse([]byte(input), FormatJSON)
	if err != nil {
		return nil, err
	}
	return cfg.Projects, nil
}

// warnUnmatchable warns about rows that can never match. Project numbers are not
// checked here; the lifecycle reports a missing one and the board reports an
// unknown one when the row matches.
func warnUnmatchable(rows []domain.ProjectMapping) {
	for i, row := range rows {
		if row.Label == "" {
			logger.Warn("projects[%d] has no label and will never match", i)
		}
	}
}
