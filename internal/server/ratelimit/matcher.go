package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited marks probes that must never be throttled.
var unlimited = map[string]bool{
	http.MethodGet + " /health": true,
}

// MatchEndpoint returns the configuration governing a request, or nil when the
// default limit applies. A configured path covers itself and every path below
// it ("/enhance" covers "/enhance/document"); the longest matching path wins.
// An empty Method matches any method.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != "" && cfg.Method != method {
			continue
		}
		if !coversPath(cfg.Path, path) {
			continue
		}
		if best == nil || len(cfg.Path) > len(best.Path) {
			best = cfg
		}
	}
	return best
}

// coversPath reports whether pattern equals path or is a whole-segment prefix of it.
func coversPath(pattern, path string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	rest, ok := strings.CutPrefix(path, pattern)
	return ok && (rest == "" || strings.HasPrefix(rest, "/"))
}
