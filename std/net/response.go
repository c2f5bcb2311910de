package net

import "strings"

// Header holds response headers keyed by lower-cased name. A repeated header keeps the last value.
type Header map[string]string

func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

func (h Header) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

func (h Header) Del(key string) {
	delete(h, strings.ToLower(key))
}

func (h Header) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// Response is a fully read HTTP (or file/data/about) response. Responses may be shared
// through the cache, so callers must not modify them.
type Response struct {
	URL     *URL
	Version string
	Status  int
	Reason  string
	Header  Header
	Body    []byte
}

// IsRedirect reports a 3xx status.
func (r *Response) IsRedirect() bool {
	return r.Status >= 300 && r.Status < 400
}

// Text returns the body as a string. Invalid UTF-8 is replaced with U+FFFD.
func (r *Response) Text() string {
	return strings.ToValidUTF8(string(r.Body), "\uFFFD")
}

// retagged returns a shallow copy of r pointing at u.
func (r *Response) retagged(u *URL) *Response {
	c := *r
	c.URL = u
	return &c
}

func okResponse(u *URL, body []byte) *Response {
	return &Response{URL: u, Version: "HTTP/1.1", Status: 200, Reason: "OK", Header: Header{}, Body: body}
}
