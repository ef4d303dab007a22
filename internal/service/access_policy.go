package service

import (
	"strings"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/models"
)

type accessRule struct {
	segments []string
	method   string
	roles    map[string]struct{}
}

// prefixAccessPolicy is a linear table of path-prefix rules. A request must
// satisfy every rule whose prefix and method match it.
type prefixAccessPolicy struct {
	rules []accessRule
}

// NewAccessPolicy compiles the configured policy table. Prefixes match whole
// path segments ignoring case, so "/api/admin" covers "/api/admin/users"
// but not "/api/administrators". Role names are normalized.
func NewAccessPolicy(rules []config.AccessRule) AccessPolicy {
	compiled := make([]accessRule, 0, len(rules))
	for _, rule := range rules {
		roles := make(map[string]struct{}, len(rule.Roles))
		for _, role := range rule.Roles {
			roles[models.NormalizeRole(role)] = struct{}{}
		}

		compiled = append(compiled, accessRule{
			segments: pathSegments(rule.Prefix),
			method:   strings.ToUpper(strings.TrimSpace(rule.Method)),
			roles:    roles,
		})
	}

	return &prefixAccessPolicy{rules: compiled}
}

func (p *prefixAccessPolicy) Allowed(method, path string, role models.Role) bool {
	normalized := role.Normalized()
	segments := pathSegments(path)
	method = strings.ToUpper(method)

	for _, rule := range p.rules {
		if !rule.matches(method, segments) {
			continue
		}
		if _, ok := rule.roles[normalized]; !ok {
			return false
		}
	}

	return true
}

func (r accessRule) matches(method string, segments []string) bool {
	if r.method != "" && r.method != method {
		return false
	}
	if len(segments) < len(r.segments) {
		return false
	}
	for i, segment := range r.segments {
		if segments[i] != segment {
			return false
		}
	}
	return true
}

// pathSegments splits a URL path into lower-cased, non-empty segments.
func pathSegments(path string) []string {
	parts := strings.Split(strings.ToLower(path), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
