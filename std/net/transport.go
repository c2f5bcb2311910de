package net

import (
	"crypto/tls"
	"io"
	gonet "net"
	"strconv"
	"time"
)

// Transport opens byte streams to an origin. https streams must already be TLS wrapped.
type Transport interface {
	Dial(scheme, host string, port int) (io.ReadWriteCloser, error)
}

// DialTransport dials TCP, adding TLS for https.
type DialTransport struct {
	Timeout   time.Duration
	TLSConfig *tls.Config
}

func (t *DialTransport) Dial(scheme, host string, port int) (io.ReadWriteCloser, error) {
	d := &gonet.Dialer{Timeout: t.Timeout}
	addr := gonet.JoinHostPort(host, strconv.Itoa(port))
	if scheme != "https" {
		return d.Dial("tcp", addr)
	}
	cfg := &tls.Config{}
	if t.TLSConfig != nil {
		cfg = t.TLSConfig.Clone()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}
	return tls.DialWithDialer(d, "tcp", addr, cfg)
}
