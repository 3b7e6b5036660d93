package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	hourSecs = 3600

	// https://api.wikimedia.org/wiki/Rate_limits
	AnonRequestsPerHour = 500
	APIRequestsPerHour  = 5000

	// Site is substituted first, leaving one %s for the article identifier
	anonURLTemplate = "https://%s/wiki/%%s"
	apiURLTemplate  = "https://%s/w/rest.php/v1/page/%%s/html"

	AnonLinkPrefix = "/wiki/"
	APILinkPrefix  = "./"

	DefaultSite      = "en.wikipedia.org"
	DefaultMaxDepth  = 25
	DefaultTimeoutMs = 30000

	// HomePage is the front-page identifier, excluded from extraction
	HomePage = "Main_Page"
)

// Search holds all resolved runtime parameters for one search invocation.
// It is built once by Resolve and passed explicitly into the fetcher and
// searcher; nothing reads ambient state after that.
type Search struct {
	Site            string
	Token           string
	URLTemplate     string // contains one %s for the article identifier
	LinkPrefix      string
	RequestsPerHour int
	TimeoutMs       int
}

// Resolve builds the search configuration for the given API token.
// An empty token selects anonymous page fetching; a non-empty token
// selects the authenticated REST API with its higher hourly budget.
// WIKIPATH_SITE and WIKIPATH_TIMEOUT_MS override the defaults.
func Resolve(token string) (*Search, error) {
	cfg := &Search{
		Site:  os.Getenv("WIKIPATH_SITE"),
		Token: token,
	}

	if raw := os.Getenv("WIKIPATH_TIMEOUT_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WIKIPATH_TIMEOUT_MS: %w", err)
		}
		cfg.TimeoutMs = ms
	}

	// Apply defaults for missing values
	applyDefaults(cfg)

	if cfg.Token != "" {
		cfg.URLTemplate = fmt.Sprintf(apiURLTemplate, cfg.Site)
		cfg.LinkPrefix = APILinkPrefix
		cfg.RequestsPerHour = APIRequestsPerHour
	} else {
		cfg.URLTemplate = fmt.Sprintf(anonURLTemplate, cfg.Site)
		cfg.LinkPrefix = AnonLinkPrefix
		cfg.RequestsPerHour = AnonRequestsPerHour
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// RequestWait returns the minimum spacing between successive requests,
// derived from the hourly request budget.
func (s *Search) RequestWait() time.Duration {
	return time.Duration(float64(hourSecs) / float64(s.RequestsPerHour) * float64(time.Second))
}

// Authenticated reports whether requests carry a bearer token.
func (s *Search) Authenticated() bool {
	return s.Token != ""
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Search) {
	if cfg.Site == "" {
		cfg.Site = DefaultSite
	}
	if cfg.TimeoutMs == 0 {
		cfg.TimeoutMs = DefaultTimeoutMs
	}
}

// validate checks that required fields are present and values are sensible
func validate(cfg *Search) error {
	if cfg.Site == "" {
		return fmt.Errorf("site is required")
	}
	if cfg.RequestsPerHour < 1 {
		return fmt.Errorf("requests_per_hour must be >= 1")
	}
	if cfg.TimeoutMs < 1000 {
		return fmt.Errorf("timeout_ms must be >= 1000")
	}
	return nil
}
