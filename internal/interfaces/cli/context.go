package cli

import (
	"io"
	"os"

	"github.com/lite-lake/mijnhost-dns/internal/domain/contract"
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/mijnhost"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/persistence"
)

// APIFactory builds the DNS API client from the loaded config and the
// resolved API key.
type APIFactory func(cfg *entity.Config, apiKey string) (contract.DNSAPI, error)

type Context struct {
	ConfigDir   string
	ShowVersion bool

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	NewAPI APIFactory
}

func NewContext() *Context {
	return &Context{
		ConfigDir: ".",
		In:        os.Stdin,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		NewAPI:    newMijnHostAPI,
	}
}

func newMijnHostAPI(cfg *entity.Config, apiKey string) (contract.DNSAPI, error) {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "mijnhost-dns/" + Version
	}
	return mijnhost.New(apiKey,
		mijnhost.WithUserAgent(userAgent),
		mijnhost.WithBaseURL(cfg.BaseURL),
		mijnhost.WithTimeout(cfg.Timeout),
	)
}

// Connect loads and validates the configuration and returns a ready client.
func (c *Context) Connect() (contract.DNSAPI, *entity.Config, error) {
	loader := persistence.NewConfigLoader(c.ConfigDir)
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, nil, err
	}
	apiKey, err := loader.ResolveAPIKey(cfg)
	if err != nil {
		return nil, nil, err
	}
	api, err := c.NewAPI(cfg, apiKey)
	if err != nil {
		return nil, nil, err
	}
	return api, cfg, nil
}
