package net

import (
	"bufio"
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseStatusLine splits "HTTP/1.1 200 OK". The reason phrase may be empty.
func parseStatusLine(line string) (version string, status int, reason string, err error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/") {
		return "", 0, "", errors.Wrapf(ErrBadStatusLine, "%q", line)
	}
	status, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, "", errors.Wrapf(ErrBadStatusLine, "%q", line)
	}
	if len(parts) == 3 {
		reason = parts[2]
	}
	return parts[0], status, reason, nil
}

// readHeaders reads header lines up to the blank line into h. Lines without a colon
// are skipped. With lenient set, EOF before the blank line ends the block quietly.
func readHeaders(r *bufio.Reader, h Header, lenient bool) error {
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if lenient && err == io.EOF {
				return nil
			}
			return errors.Wrap(ErrMalformedResponse, "unexpected end of headers")
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return nil
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

// readBody reads the body framed according to h. keep is false when the body was
// delimited by the server closing the connection.
func readBody(r *bufio.Reader, status int, h Header) (body []byte, keep bool, err error) {
	if status/100 == 1 || status == 204 || status == 304 {
		return nil, true, nil
	}
	if strings.Contains(strings.ToLower(h.Get("transfer-encoding")), "chunked") {
		body, err = readChunked(r, h)
		return body, true, err
	}
	if cl := strings.TrimSpace(h.Get("content-length")); cl != "" {
		n, err := strconv.Atoi(cl)
		if err != nil || n < 0 {
			return nil, false, errors.Wrapf(ErrMalformedResponse, "content-length %q", cl)
		}
		body = make([]byte, n)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, false, errors.Wrapf(ErrMalformedResponse, "short body: %v", err)
		}
		return body, true, nil
	}
	body, err = io.ReadAll(r)
	if err != nil {
		return nil, false, errors.Wrap(err, "reading body")
	}
	return body, false, nil
}

// readChunked decodes a chunked body. Chunk extensions are ignored and trailers are
// merged into h.
func readChunked(r *bufio.Reader, h Header) ([]byte, error) {
	var buf bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, errors.Wrap(ErrMalformedResponse, "unexpected EOF while reading chunk size")
		}
		size := strings.TrimSpace(line)
		if i := strings.Index(size, ";"); i >= 0 {
			size = strings.TrimSpace(size[:i])
		}
		n, err := strconv.ParseInt(size, 16, 64)
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrMalformedResponse, "invalid chunk size %q", size)
		}
		if n == 0 {
			break
		}
		if _, err := io.CopyN(&buf, r, n); err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "short chunk: %v", err)
		}
		// CRLF after the chunk data
		if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "reading chunk terminator")
		}
	}
	if err := readHeaders(r, h, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeBody undoes Content-Encoding and removes the header once decoded.
func decodeBody(body []byte, h Header) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(h.Get("content-encoding")))
	var out []byte
	var err error
	switch enc {
	case "", "identity":
		return body, nil
	case "gzip", "x-gzip":
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(body))
		if err == nil {
			out, err = io.ReadAll(zr)
		}
	case "deflate":
		// zlib wrapped first, raw deflate as fallback
		var zr io.ReadCloser
		if zr, err = zlib.NewReader(bytes.NewReader(body)); err == nil {
			out, err = io.ReadAll(zr)
		}
		if err != nil {
			out, err = io.ReadAll(flate.NewReader(bytes.NewReader(body)))
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "%q", enc)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decoding %s body: %v", enc, err)
	}
	h.Del("content-encoding")
	return out, nil
}
