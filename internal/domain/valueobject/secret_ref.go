package valueobject

import (
	"fmt"
	"log/slog"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

// SecretRef is a credential given either inline or as the name of an
// environment variable holding it. In YAML a bare string is the inline form.
type SecretRef struct {
	Plain string `yaml:"plain,omitempty"`
	Env   string `yaml:"env,omitempty"`
}

func NewSecretRefPlain(plain string) *SecretRef {
	return &SecretRef{Plain: plain}
}

func NewSecretRefEnv(env string) *SecretRef {
	return &SecretRef{Env: env}
}

func (s *SecretRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var plain string
	if err := unmarshal(&plain); err == nil {
		s.Plain = plain
		return nil
	}

	type alias SecretRef
	var ref alias
	if err := unmarshal(&ref); err != nil {
		return err
	}
	s.Plain = ref.Plain
	s.Env = ref.Env
	return nil
}

func (s SecretRef) MarshalYAML() (interface{}, error) {
	if s.Env != "" {
		return map[string]string{"env": s.Env}, nil
	}
	return "***", nil
}

// LogValue keeps credentials out of structured logs.
func (s SecretRef) LogValue() slog.Value {
	if s.Env != "" {
		return slog.StringValue("env:***")
	}
	return slog.StringValue("***")
}

func (s SecretRef) String() string {
	return s.LogValue().String()
}

func (s *SecretRef) ResolveWith(lookup func(string) (string, bool)) (string, error) {
	if s.Env != "" {
		val, ok := lookup(s.Env)
		if !ok || val == "" {
			return "", fmt.Errorf("%w: env %s", domain.ErrMissingSecret, s.Env)
		}
		return val, nil
	}
	return s.Plain, nil
}

func (s *SecretRef) IsZero() bool {
	return s == nil || (s.Plain == "" && s.Env == "")
}

func (s *SecretRef) Validate() error {
	if s.IsZero() {
		return domain.ErrEmptyValue
	}
	return nil
}
