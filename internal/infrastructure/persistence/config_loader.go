package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
)

const (
	ConfigFileName = "mijnhost.yaml"

	EnvAPIKey    = "MIJNHOST_API_KEY"
	EnvUserAgent = "MIJNHOST_USER_AGENT"
)

type ConfigLoader struct {
	baseDir string
	lookup  func(string) (string, bool)
}

func NewConfigLoader(baseDir string) *ConfigLoader {
	return &ConfigLoader{baseDir: baseDir, lookup: os.LookupEnv}
}

func (l *ConfigLoader) Path() string {
	return filepath.Join(l.baseDir, ConfigFileName)
}

// Load reads mijnhost.yaml from the config directory and applies the
// MIJNHOST_* environment overrides. The file may be absent when the API
// key comes from the environment.
func (l *ConfigLoader) Load() (*entity.Config, error) {
	cfg := &entity.Config{}

	data, err := os.ReadFile(l.Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		if _, ok := l.lookup(EnvAPIKey); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, l.Path())
		}
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigReadFailed, l.Path(), err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigParseFailed, l.Path(), err)
		}
	}

	if v, ok := l.lookup(EnvAPIKey); ok && v != "" {
		cfg.APIKey.Plain = v
		cfg.APIKey.Env = ""
	}
	if v, ok := l.lookup(EnvUserAgent); ok && v != "" {
		cfg.UserAgent = v
	}

	return cfg, nil
}

func (l *ConfigLoader) Validate(cfg *entity.Config) error {
	if cfg == nil {
		return domain.ErrConfigNotLoaded
	}
	return cfg.Validate()
}

// ResolveAPIKey returns the API key value, reading the environment when the
// config refers to a variable.
func (l *ConfigLoader) ResolveAPIKey(cfg *entity.Config) (string, error) {
	key, err := cfg.APIKey.ResolveWith(l.lookup)
	if err != nil {
		return "", domain.WrapOp("resolve api_key", err)
	}
	if key == "" {
		return "", domain.ErrMissingAPIKey
	}
	return key, nil
}

// LoadRecords reads the "records" list of a YAML file, as used by the
// replace command. The key must be present; only an explicit "records: []"
// yields an empty set.
func LoadRecords(filePath string) ([]entity.DNSRecord, error) {
	records, err := loadEntity[entity.DNSRecord](filePath, "records")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	for i := range records {
		if records[i].TTL == 0 {
			records[i].TTL = domain.DefaultRecordTTL
		}
	}
	set := &entity.RecordSet{Records: records}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return records, nil
}

func loadEntity[T any](filePath, yamlKey string) ([]T, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigParseFailed, err)
	}

	node, ok := raw[yamlKey]
	if !ok || node.Tag == "!!null" {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, domain.RequiredField(yamlKey))
	}

	items := []T{}
	if err := node.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigParseFailed, err)
	}
	return items, nil
}
