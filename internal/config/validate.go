// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Plex validation
	if c.Plex.URL != "" {
		u, err := url.Parse(c.Plex.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("plex.url: must be an http(s) URL, got %q", c.Plex.URL))
		}
		if c.Plex.Token == "" {
			errs = append(errs, "plex.token: required when plex.url is set")
		}
	}
	if c.Plex.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("plex.timeout: must not be negative, got %s", c.Plex.Timeout))
	}

	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Sprintf("search.limit: must be positive, got %d", c.Search.Limit))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
