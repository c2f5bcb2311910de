package net

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultUserAgent = "webdoc/1.0 (compatible; Go)"

// Config controls a Session.
type Config struct {
	MaxRedirects int
	UserAgent    string
	CacheControl CacheControlPolicy
	DialTimeout  time.Duration
}

// DefaultConfig returns the settings used when no configuration file is given.
func DefaultConfig() Config {
	return Config{
		MaxRedirects: 10,
		UserAgent:    defaultUserAgent,
		CacheControl: FirstDirectiveOnly,
		DialTimeout:  30 * time.Second,
	}
}

// Session fetches resources. It owns the connection pool and response cache, so
// everything fetched through one Session shares them.
type Session struct {
	cfg       Config
	transport Transport
	pool      *pool
	cache     *Cache
	now       func() time.Time
	log       logrus.FieldLogger
}

// Option customises a Session.
type Option func(*Session)

// WithTransport replaces the default TCP/TLS transport.
func WithTransport(t Transport) Option {
	return func(s *Session) { s.transport = t }
}

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// NewSession builds a Session from cfg. A non-positive MaxRedirects disables redirects.
func NewSession(cfg Config, opts ...Option) *Session {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	s := &Session{
		cfg:  cfg,
		pool: newPool(),
		now:  time.Now,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.transport == nil {
		s.transport = &DialTransport{Timeout: cfg.DialTimeout}
	}
	s.cache = newCache(s.now)
	return s
}

// Cache exposes the session's response cache.
func (s *Session) Cache() *Cache {
	return s.cache
}

// Close closes all idle pooled connections.
func (s *Session) Close() error {
	s.pool.closeAll()
	return nil
}

// Fetch GETs u, following up to MaxRedirects redirects.
func (s *Session) Fetch(u *URL) (*Response, error) {
	return s.FetchRedirects(u, s.cfg.MaxRedirects)
}

// FetchRedirects GETs u with an explicit redirect budget.
func (s *Session) FetchRedirects(u *URL, redirects int) (*Response, error) {
	return s.do("GET", u, "", redirects)
}

// Post sends payload as an url-encoded form body. The response is never cached;
// redirects are followed with GET.
func (s *Session) Post(u *URL, payload string) (*Response, error) {
	return s.do("POST", u, payload, s.cfg.MaxRedirects)
}

func (s *Session) do(method string, u *URL, payload string, redirects int) (*Response, error) {
	switch u.Scheme() {
	case "about":
		return okResponse(u, nil), nil
	case "file":
		return s.fetchFile(u)
	case "data":
		return s.fetchData(u)
	}

	log := s.log.WithFields(logrus.Fields{"url": u.String(), "redirects_left": redirects})
	key := u.CacheKey()
	if method == "GET" {
		if resp, ok := s.cache.get(key); ok {
			log.WithField("key", key).Debug("cache hit")
			return resp.retagged(u), nil
		}
	}

	resp, err := s.requestHTTP(method, u, payload)
	if err != nil {
		return nil, err
	}
	log = log.WithField("status", resp.Status)

	if loc := resp.Header.Get("location"); resp.IsRedirect() && loc != "" {
		if redirects <= 0 {
			return nil, errors.Wrapf(ErrTooManyRedirects, "redirect from %s to %s", u, loc)
		}
		next, err := u.Resolve(loc)
		if err != nil {
			return nil, errors.Wrapf(err, "redirect location %q", loc)
		}
		if u.ViewSource() {
			next = next.WithViewSource()
		}
		log.WithField("location", next.String()).Info("following redirect")
		return s.do("GET", next, "", redirects-1)
	}

	if method == "GET" && resp.Status == 200 {
		if expires, ok := expiry(resp.Header.Get("cache-control"), s.now(), s.cfg.CacheControl); ok {
			s.cache.put(key, expires, resp)
			log.WithFields(logrus.Fields{"key": key, "expires": expires}).Debug("cache store")
		}
	}
	return resp, nil
}

func (s *Session) fetchFile(u *URL) (*Response, error) {
	path := u.FilePath()
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return okResponse(u, body), nil
}

func (s *Session) fetchData(u *URL) (*Response, error) {
	body, err := u.DataBytes()
	if err != nil {
		return nil, err
	}
	resp := okResponse(u, body)
	resp.Header.Set("content-type", u.MediaType())
	return resp, nil
}

// requestHTTP performs one request/response exchange without redirects or caching.
func (s *Session) requestHTTP(method string, u *URL, payload string) (*Response, error) {
	if u.ViewSource() {
		resp, err := s.requestHTTP(method, u.Inner(), payload)
		if err != nil {
			return nil, err
		}
		return resp.retagged(u), nil
	}

	key := connKey{scheme: u.Scheme(), host: u.Host(), port: u.Port()}
	req := s.buildRequest(method, u, payload)
	log := s.log.WithField("url", u.String())

	for attempt := 0; ; attempt++ {
		pc, err := s.checkout(key)
		if err != nil {
			return nil, errors.Wrapf(err, "connecting to %s:%d", u.Host(), u.Port())
		}
		resp, keep, retry, err := s.roundTrip(pc, req, u)
		if err != nil {
			pc.conn.Close()
			if retry && attempt == 0 {
				log.WithError(err).Debug("stale connection, retrying")
				continue
			}
			return nil, err
		}
		if !keep || strings.EqualFold(resp.Header.Get("connection"), "close") {
			pc.conn.Close()
		} else {
			s.pool.put(key, pc)
		}
		return resp, nil
	}
}

func (s *Session) checkout(key connKey) (*pooledConn, error) {
	if pc := s.pool.take(key); pc != nil {
		s.log.WithField("key", fmt.Sprintf("%s://%s:%d", key.scheme, key.host, key.port)).Debug("reusing connection")
		pc.reused = true
		return pc, nil
	}
	conn, err := s.transport.Dial(key.scheme, key.host, key.port)
	if err != nil {
		return nil, err
	}
	return &pooledConn{conn: conn, r: bufio.NewReader(conn)}, nil
}

func (s *Session) buildRequest(method string, u *URL, payload string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", method, u.Path())
	fmt.Fprintf(&b, "Host: %s\r\n", u.Host())
	fmt.Fprintf(&b, "User-Agent: %s\r\n", s.cfg.UserAgent)
	b.WriteString("Connection: keep-alive\r\n")
	b.WriteString("Accept-Encoding: gzip\r\n")
	if method == "POST" {
		fmt.Fprintf(&b, "Content-Length: %d\r\n", len(payload))
		b.WriteString("Content-Type: application/x-www-form-urlencoded\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(payload)
	return []byte(b.String())
}

// roundTrip writes req and reads the complete response. retry reports that the
// failure looks like a stale connection.
func (s *Session) roundTrip(pc *pooledConn, req []byte, u *URL) (resp *Response, keep, retry bool, err error) {
	if _, err := pc.conn.Write(req); err != nil {
		return nil, false, pc.reused, errors.Wrap(err, "writing request")
	}
	line, err := pc.r.ReadString('\n')
	if err != nil && line == "" {
		return nil, false, true, errors.Wrapf(ErrBadStatusLine, "empty status line: %v", err)
	}
	version, status, reason, err := parseStatusLine(line)
	if err != nil {
		return nil, false, true, err
	}

	h := Header{}
	if err := readHeaders(pc.r, h, false); err != nil {
		return nil, false, false, err
	}
	body, keep, err := readBody(pc.r, status, h)
	if err != nil {
		return nil, false, false, err
	}
	if body, err = decodeBody(body, h); err != nil {
		return nil, false, false, err
	}
	return &Response{URL: u, Version: version, Status: status, Reason: reason, Header: h, Body: body}, keep, false, nil
}
