package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/meruem/meruem-web/internal/errors"
)

type BackendConfig interface {
	// GetAPIBaseURL is the root of the Meruem backend API, without a trailing slash.
	GetAPIBaseURL() string
	GetBackendTimeout() time.Duration
}

type Backend struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:80"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

var _ BackendConfig = Backend{}

func (b Backend) GetAPIBaseURL() string {
	return strings.TrimRight(b.APIBaseURL, "/")
}

func (b Backend) GetBackendTimeout() time.Duration {
	if b.Timeout <= 0 {
		return 10 * time.Second
	}
	return b.Timeout
}

func (b Backend) validate() error {
	u, err := url.Parse(b.APIBaseURL)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "API_BASE_URL %q: %v", b.APIBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "API_BASE_URL %q must be an absolute http(s) URL", b.APIBaseURL)
	}
	return nil
}
