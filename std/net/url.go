package net

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const viewSourcePrefix = "view-source:"

// FilePathPolicy decides how the path of a file: URL maps onto the host file system.
type FilePathPolicy int

const (
	// PosixPaths passes file: paths through unchanged.
	PosixPaths FilePathPolicy = iota
	// WindowsPaths strips the slash in front of a drive letter ("/C:/x" -> "C:/x").
	WindowsPaths
)

// ParseFilePathPolicy maps a config value onto a policy. Unknown values mean PosixPaths.
func ParseFilePathPolicy(s string) FilePathPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "windows") {
		return WindowsPaths
	}
	return PosixPaths
}

// URL is an immutable reference to a fetchable resource. The zero value is not valid;
// use ParseURL.
type URL struct {
	scheme     string
	host       string
	port       int
	path       string
	viewSource bool

	// data: URLs only
	dataMeta  string
	mediaType string
	base64    bool
	payload   string

	policy FilePathPolicy
}

// ParseURL parses s using PosixPaths for file: URLs.
func ParseURL(s string) (*URL, error) {
	return ParseURLWithPolicy(s, PosixPaths)
}

// ParseURLWithPolicy parses s. Supported forms are
// [view-source:]scheme://host[:port]/path, data:[mediatype][;base64],payload,
// file://path and the literal about:blank.
func ParseURLWithPolicy(s string, policy FilePathPolicy) (*URL, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, viewSourcePrefix) {
		inner, err := ParseURLWithPolicy(s[len(viewSourcePrefix):], policy)
		if err != nil {
			return nil, err
		}
		inner.viewSource = true
		return inner, nil
	}

	u := &URL{policy: policy}
	if s == "about:blank" {
		u.scheme = "about"
		u.path = "blank"
		return u, nil
	}

	var rest string
	if i := strings.Index(s, "://"); i >= 0 {
		u.scheme, rest = strings.ToLower(s[:i]), s[i+3:]
	} else if strings.HasPrefix(s, "data:") {
		u.scheme, rest = "data", s[len("data:"):]
	} else {
		return nil, errors.Wrapf(ErrMalformedURL, "unsupported url %q", s)
	}

	switch u.scheme {
	case "http", "https":
		if !strings.Contains(rest, "/") {
			rest += "/"
		}
		slash := strings.Index(rest, "/")
		hostport := rest[:slash]
		u.path = rest[slash:]
		u.port = 80
		if u.scheme == "https" {
			u.port = 443
		}
		if i := strings.Index(hostport, ":"); i >= 0 {
			port, err := strconv.Atoi(hostport[i+1:])
			if err != nil || port <= 0 || port > 65535 {
				return nil, errors.Wrapf(ErrMalformedURL, "bad port in %q", s)
			}
			u.host, u.port = hostport[:i], port
		} else {
			u.host = hostport
		}
		if u.host == "" {
			return nil, errors.Wrapf(ErrMalformedURL, "missing host in %q", s)
		}
	case "file":
		u.path = rest
	case "data":
		comma := strings.Index(rest, ",")
		if comma < 0 {
			return nil, errors.Wrapf(ErrMalformedURL, "data url without comma: %q", s)
		}
		u.dataMeta, u.payload = rest[:comma], rest[comma+1:]
		u.mediaType = "text/plain"
		for i, part := range strings.Split(u.dataMeta, ";") {
			if i == 0 && part != "" {
				u.mediaType = part
			}
			if part == "base64" {
				u.base64 = true
			}
		}
	default:
		return nil, errors.Wrapf(ErrMalformedURL, "unsupported scheme %q", u.scheme)
	}
	return u, nil
}

// ParseURLOrFile treats raw as a local path when it names an existing file and is not
// already a URL. Otherwise it behaves like ParseURLWithPolicy.
func ParseURLOrFile(raw string, policy FilePathPolicy) (*URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") && !hasSpecialPrefix(raw) && raw != "" {
		if _, err := os.Stat(raw); err == nil {
			abs, err := filepath.Abs(raw)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedURL, "path %q: %v", raw, err)
			}
			p := filepath.ToSlash(abs)
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			return ParseURLWithPolicy("file://"+p, policy)
		}
	}
	return ParseURLWithPolicy(raw, policy)
}

func (u *URL) Scheme() string    { return u.scheme }
func (u *URL) Host() string      { return u.host }
func (u *URL) Port() int         { return u.port }
func (u *URL) Path() string      { return u.path }
func (u *URL) ViewSource() bool  { return u.viewSource }
func (u *URL) MediaType() string { return u.mediaType }

// IsNetwork reports whether the URL is fetched over HTTP(S).
func (u *URL) IsNetwork() bool {
	return u.scheme == "http" || u.scheme == "https"
}

// Inner returns a copy of u without the view-source flag.
func (u *URL) Inner() *URL {
	inner := *u
	inner.viewSource = false
	return &inner
}

// WithViewSource returns a copy of u carrying the view-source flag.
func (u *URL) WithViewSource() *URL {
	vs := *u
	vs.viewSource = true
	return &vs
}

// String renders the canonical absolute form. Parsing the result yields an equal URL.
func (u *URL) String() string {
	var s string
	switch u.scheme {
	case "about":
		s = "about:blank"
	case "data":
		s = "data:" + u.dataMeta + "," + u.payload
	case "file":
		s = "file://" + u.path
	default:
		s = u.scheme + "://" + u.host
		if !(u.scheme == "http" && u.port == 80) && !(u.scheme == "https" && u.port == 443) {
			s += ":" + strconv.Itoa(u.port)
		}
		s += u.path
	}
	if u.viewSource {
		return viewSourcePrefix + s
	}
	return s
}

// CacheKey identifies the content of u. URLs with equal keys are interchangeable for the cache.
func (u *URL) CacheKey() string {
	switch u.scheme {
	case "http", "https":
		return fmt.Sprintf("%s://%s:%d%s", u.scheme, u.host, u.port, u.path)
	case "file":
		return "file://" + u.path
	case "data":
		return "data:" + u.dataMeta + "," + u.payload
	default:
		return "about:blank"
	}
}

// origin is the prefix used when building URLs relative to u.
func (u *URL) origin() string {
	if u.scheme == "file" {
		return "file://"
	}
	return fmt.Sprintf("%s://%s:%d", u.scheme, u.host, u.port)
}

func hasSpecialPrefix(ref string) bool {
	for _, p := range []string{"data:", "about:", "view-source:", "file:"} {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

// Resolve interprets ref relative to u and returns a new URL; u is never modified.
func (u *URL) Resolve(ref string) (*URL, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "://") || hasSpecialPrefix(ref) {
		return ParseURLWithPolicy(ref, u.policy)
	}
	if u.scheme == "data" || u.scheme == "about" {
		return nil, errors.Wrapf(ErrMalformedURL, "cannot resolve %q against %s", ref, u.scheme)
	}
	if strings.HasPrefix(ref, "//") {
		return ParseURLWithPolicy(u.scheme+":"+ref, u.policy)
	}
	if strings.HasPrefix(ref, "/") {
		return ParseURLWithPolicy(u.origin()+ref, u.policy)
	}

	dir := ""
	if i := strings.LastIndex(u.path, "/"); i >= 0 {
		dir = u.path[:i]
	}
	for {
		if strings.HasPrefix(ref, "../") {
			ref = ref[3:]
			if i := strings.LastIndex(dir, "/"); i >= 0 {
				dir = dir[:i]
			}
		} else if strings.HasPrefix(ref, "./") {
			ref = ref[2:]
		} else {
			break
		}
	}
	if dir == "" && !strings.HasPrefix(u.path, "/") {
		return ParseURLWithPolicy(u.origin()+ref, u.policy)
	}
	return ParseURLWithPolicy(u.origin()+dir+"/"+ref, u.policy)
}

// FilePath maps a file: URL onto a local path according to the URL's policy.
func (u *URL) FilePath() string {
	p := u.path
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	if u.policy == WindowsPaths && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return p
}

// DataBytes decodes the payload of a data: URL.
func (u *URL) DataBytes() ([]byte, error) {
	if u.base64 {
		b, err := base64.StdEncoding.DecodeString(u.payload)
		if err != nil {
			b, err = base64.RawStdEncoding.DecodeString(u.payload)
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedURL, "bad base64 payload: %v", err)
		}
		return b, nil
	}
	if unescaped, err := url.PathUnescape(u.payload); err == nil {
		return []byte(unescaped), nil
	}
	return []byte(u.payload), nil
}
