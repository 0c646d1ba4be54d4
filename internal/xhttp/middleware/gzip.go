package middleware

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/garrettladley/moodly/internal/xhttp"
)

const (
	gzipEncoding       = "gzip"
	defaultGzipMinSize = 1024
	eventStreamType    = "text/event-stream"
)

type gzipConfig struct {
	minSize int
	level   int
}

type GzipOption func(*gzipConfig)

// WithGzipMinSize sets how many body bytes are buffered before the response
// is compressed. Smaller bodies are sent as is.
func WithGzipMinSize(n int) GzipOption {
	return func(cfg *gzipConfig) {
		if n >= 0 {
			cfg.minSize = n
		}
	}
}

// WithGzipLevel sets the compression level. Levels gzip rejects are ignored.
func WithGzipLevel(level int) GzipOption {
	return func(cfg *gzipConfig) {
		if level >= gzip.HuffmanOnly && level <= gzip.BestCompression {
			cfg.level = level
		}
	}
}

// Gzip compresses responses for clients that accept gzip. Event streams,
// bodiless statuses and responses that already carry a Content-Encoding
// pass through untouched.
func Gzip(opts ...GzipOption) func(http.Handler) http.Handler {
	cfg := gzipConfig{minSize: defaultGzipMinSize, level: gzip.DefaultCompression}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool := &sync.Pool{
		New: func() any {
			zw, _ := gzip.NewWriterLevel(nil, cfg.level)
			return zw
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add(xhttp.Vary, xhttp.AcceptEncoding)

			cw := &compressWriter{
				ResponseWriter: w,
				pool:           pool,
				minSize:        cfg.minSize,
				status:         http.StatusOK,
			}
			defer cw.Close() //nolint:errcheck // best-effort flush on response completion

			next.ServeHTTP(cw, r)
		})
	}
}

func acceptsGzip(r *http.Request) bool {
	for part := range strings.SplitSeq(r.Header.Get(xhttp.AcceptEncoding), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), gzipEncoding) {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

type writeMode uint8

const (
	modeUndecided writeMode = iota
	modePassthrough
	modeCompress
)

// compressWriter buffers the start of a body until it knows whether the
// response is worth compressing.
type compressWriter struct {
	http.ResponseWriter
	pool        *sync.Pool
	minSize     int
	status      int
	wroteHeader bool
	mode        writeMode
	buf         bytes.Buffer
	zw          *gzip.Writer
}

var (
	_ http.ResponseWriter = (*compressWriter)(nil)
	_ http.Flusher        = (*compressWriter)(nil)
	_ io.Closer           = (*compressWriter)(nil)
)

func (c *compressWriter) WriteHeader(code int) {
	if c.wroteHeader {
		return
	}
	if code < http.StatusOK {
		c.ResponseWriter.WriteHeader(code)
		return
	}
	c.status = code
	c.wroteHeader = true
}

func (c *compressWriter) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}

	switch c.mode {
	case modeCompress:
		n, err := c.zw.Write(b)
		if err != nil {
			return n, fmt.Errorf("failed to write gzip: %w", err)
		}
		return n, nil
	case modePassthrough:
		return c.ResponseWriter.Write(b)
	}

	if !c.compressible() {
		if err := c.commit(modePassthrough); err != nil {
			return 0, err
		}
		return c.ResponseWriter.Write(b)
	}

	c.buf.Write(b)
	if c.buf.Len() < c.minSize {
		return len(b), nil
	}
	if err := c.commit(modeCompress); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (c *compressWriter) compressible() bool {
	h := c.Header()
	if h.Get(xhttp.ContentEncoding) != "" {
		return false
	}
	if strings.HasPrefix(h.Get(xhttp.ContentType), eventStreamType) {
		return false
	}
	switch c.status {
	case http.StatusNoContent, http.StatusNotModified:
		return false
	}
	return true
}

// commit writes the status line and whatever has been buffered so far.
func (c *compressWriter) commit(mode writeMode) error {
	c.mode = mode

	if mode == modePassthrough {
		c.ResponseWriter.WriteHeader(c.status)
		if c.buf.Len() == 0 {
			return nil
		}
		if _, err := c.ResponseWriter.Write(c.buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write buffered response: %w", err)
		}
		c.buf.Reset()
		return nil
	}

	h := c.Header()
	h.Set(xhttp.ContentEncoding, gzipEncoding)
	h.Del(xhttp.ContentLength)
	c.ResponseWriter.WriteHeader(c.status)

	c.zw = c.pool.Get().(*gzip.Writer)
	c.zw.Reset(c.ResponseWriter)
	if _, err := c.zw.Write(c.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to gzip writer: %w", err)
	}
	c.buf.Reset()
	return nil
}

// Flush sends buffered bytes now. A body flushed before reaching the minimum
// size is compressed anyway so later writes keep the same encoding.
func (c *compressWriter) Flush() {
	if c.mode == modeUndecided {
		if !c.wroteHeader {
			c.WriteHeader(http.StatusOK)
		}
		mode := modePassthrough
		if c.compressible() {
			mode = modeCompress
		}
		if err := c.commit(mode); err != nil {
			return
		}
	}
	if c.zw != nil {
		_ = c.zw.Flush()
	}
	if flusher, ok := c.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (c *compressWriter) Close() error {
	switch c.mode {
	case modeUndecided:
		return c.commit(modePassthrough)
	case modeCompress:
		err := c.zw.Close()
		c.pool.Put(c.zw)
		c.zw = nil
		if err != nil {
			return fmt.Errorf("failed to close gzip writer: %w", err)
		}
	}
	return nil
}

func (c *compressWriter) Unwrap() http.ResponseWriter {
	return c.ResponseWriter
}
