package net

import (
	"strconv"
	"strings"
	"time"
)

// CacheControlPolicy selects how much of a Cache-Control header is honoured.
type CacheControlPolicy int

const (
	// FirstDirectiveOnly looks at the first directive only, so "public, max-age=60" is not cached.
	FirstDirectiveOnly CacheControlPolicy = iota
	// AllDirectives lets no-store anywhere win and otherwise uses the first max-age.
	AllDirectives
)

// ParseCacheControlPolicy maps a config value ("first_directive_only" or
// "all_directives") onto a policy. Unknown values mean FirstDirectiveOnly.
func ParseCacheControlPolicy(s string) CacheControlPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all_directives", "all":
		return AllDirectives
	}
	return FirstDirectiveOnly
}

// expiry computes when a response with the given Cache-Control value stops being fresh.
// ok is false when the response must not be cached.
func expiry(cacheControl string, now time.Time, policy CacheControlPolicy) (expires time.Time, ok bool) {
	if strings.TrimSpace(cacheControl) == "" {
		return time.Time{}, false
	}
	var directives []string
	for _, d := range strings.Split(cacheControl, ",") {
		if d = strings.TrimSpace(d); d != "" {
			directives = append(directives, strings.ToLower(d))
		}
	}
	if len(directives) == 0 {
		return time.Time{}, false
	}

	if policy == FirstDirectiveOnly {
		directives = directives[:1]
	}
	for _, d := range directives {
		if d == "no-store" {
			return time.Time{}, false
		}
	}
	for _, d := range directives {
		if !strings.HasPrefix(d, "max-age=") {
			continue
		}
		secs, err := strconv.Atoi(strings.TrimSpace(d[len("max-age="):]))
		if err != nil || secs < 0 {
			return time.Time{}, false
		}
		return now.Add(time.Duration(secs) * time.Second), true
	}
	return time.Time{}, false
}
