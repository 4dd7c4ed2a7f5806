package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"
)

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Model.Backend != "" && !slices.Contains(Backends(), c.Model.Backend) {
		errs = append(errs, fmt.Errorf("model.backend: unknown backend %q", c.Model.Backend))
	}
	for _, b := range []Backend{BackendGroq, BackendCerebras} {
		bc, _ := c.BackendConfig(b)
		if bc.BaseURL != "" {
			if u, err := url.Parse(bc.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("model.%s.base_url: %q is not an absolute URL", b, bc.BaseURL))
			}
		}
		if bc.Temperature != nil && (*bc.Temperature < 0 || *bc.Temperature > 2) {
			errs = append(errs, fmt.Errorf("model.%s.temperature: %v is outside [0,2]", b, *bc.Temperature))
		}
	}

	if c.Model.MaxHistory < 0 {
		errs = append(errs, fmt.Errorf("model.max_history: must not be negative, got %d", c.Model.MaxHistory))
	}

	if c.Server.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit: must be positive, got %v", c.Server.RateLimit))
	}
	if c.Server.RateBurst < 0 {
		errs = append(errs, fmt.Errorf("server.rate_burst: must not be negative, got %d", c.Server.RateBurst))
	}
	if c.Server.SessionTTL != "" {
		if d, err := time.ParseDuration(c.Server.SessionTTL); err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("server.session_ttl: %q is not a valid duration", c.Server.SessionTTL))
		}
	}

	if c.Guard.Threshold < 0 || c.Guard.Threshold > 1 {
		errs = append(errs, fmt.Errorf("guard.threshold: %v is outside [0,1]", c.Guard.Threshold))
	}

	return errors.Join(errs...)
}
