package media

import (
	"fmt"
	"net/url"
	"strings"
)

// RemotePattern allows images from one host (or a "*." wildcard suffix) under a path prefix
type RemotePattern struct {
	Hostname   string
	PathPrefix string
}

// RemotePatterns is the allow-list consulted before a remote image URL is stored
type RemotePatterns []RemotePattern

// ParseRemotePatterns parses entries of the form "host/path/prefix" or "*.host/prefix"
func ParseRemotePatterns(entries []string) (RemotePatterns, error) {
	patterns := make(RemotePatterns, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		entry = strings.TrimPrefix(entry, "https://")
		if entry == "" {
			continue
		}

		host, path, _ := strings.Cut(entry, "/")
		if host == "" || (strings.Contains(host, "*") && !strings.HasPrefix(host, "*.")) {
			return nil, fmt.Errorf("invalid remote image pattern %q", entry)
		}
		patterns = append(patterns, RemotePattern{
			Hostname:   strings.ToLower(host),
			PathPrefix: "/" + path,
		})
	}
	return patterns, nil
}

// Matches reports whether u is an https URL covered by the pattern
func (p RemotePattern) Matches(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if strings.HasPrefix(p.Hostname, "*.") {
		if !strings.HasSuffix(host, p.Hostname[1:]) {
			return false
		}
	} else if host != p.Hostname {
		return false
	}
	return strings.HasPrefix(u.EscapedPath(), p.PathPrefix)
}

// Allowed reports whether rawURL may be used as an image source
func (ps RemotePatterns) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return false
	}
	for _, p := range ps {
		if p.Matches(u) {
			return true
		}
	}
	return false
}
