package ratelimit

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // path, also covering sub-paths
	Method string        // HTTP method; empty matches any
	Limit  int           // requests per window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity (defaults to Limit if 0)
}

// key identifies the bucket family an endpoint configuration owns.
func (c *EndpointConfig) key() string {
	return c.Method + " " + c.Path
}

// DefaultEndpointConfigs returns the per-endpoint limits for the resume API.
// Model calls are the most expensive, uploads next, plain-text parsing the cheapest.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/enhance", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/upload", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/parse", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
//
//	RATE_LIMIT_ENABLED          true|false (default true)
//	RATE_LIMIT_DEFAULT_LIMIT    requests per window for unlisted endpoints (default 1000)
//	RATE_LIMIT_DEFAULT_WINDOW   duration (default 1m)
//	RATE_LIMIT_CLEANUP_INTERVAL duration (default 5m)
//	RATE_LIMIT_WHITELIST        comma-separated client IPs never limited
//	RATE_LIMIT_BLACKLIST        comma-separated client IPs always rejected
//	RATE_LIMIT_ENDPOINTS        semicolon-separated "METHOD /path=limit/window[:burst]"
//	                            entries replacing the default for that endpoint
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if spec := os.Getenv("RATE_LIMIT_ENDPOINTS"); spec != "" {
		overrides, err := ParseEndpointConfigs(spec)
		if err != nil {
			log.Printf("[rate-limit] ignoring RATE_LIMIT_ENDPOINTS: %v", err)
		} else {
			endpoints = mergeEndpointConfigs(endpoints, overrides)
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// ParseEndpointConfigs parses entries such as
// "POST /enhance=10/1h:2; POST /upload=100/1m".
func ParseEndpointConfigs(spec string) ([]EndpointConfig, error) {
	var out []EndpointConfig
	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		route, rule, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q: missing '='", entry)
		}
		fields := strings.Fields(route)
		if len(fields) != 2 || !strings.HasPrefix(fields[1], "/") {
			return nil, fmt.Errorf("entry %q: route must be \"METHOD /path\"", entry)
		}

		rule, burstStr, hasBurst := strings.Cut(strings.TrimSpace(rule), ":")
		limitStr, windowStr, ok := strings.Cut(rule, "/")
		if !ok {
			return nil, fmt.Errorf("entry %q: rule must be limit/window", entry)
		}
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("entry %q: invalid limit %q", entry, limitStr)
		}
		window, err := time.ParseDuration(windowStr)
		if err != nil || window <= 0 {
			return nil, fmt.Errorf("entry %q: invalid window %q", entry, windowStr)
		}
		burst := 0
		if hasBurst {
			if burst, err = strconv.Atoi(burstStr); err != nil || burst < 0 {
				return nil, fmt.Errorf("entry %q: invalid burst %q", entry, burstStr)
			}
		}

		out = append(out, EndpointConfig{
			Path:   fields[1],
			Method: strings.ToUpper(fields[0]),
			Limit:  limit,
			Window: window,
			Burst:  burst,
		})
	}
	return out, nil
}

// mergeEndpointConfigs replaces base entries with same-route overrides and appends new routes.
func mergeEndpointConfigs(base, overrides []EndpointConfig) []EndpointConfig {
	out := append([]EndpointConfig(nil), base...)
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if out[i].key() == o.key() {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
