package middleware

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
)

// ETag buffers successful GET responses, tags them with a content hash and answers
// 304 Not Modified when the client already holds that version.
func ETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ww := newBufferedResponseWriter(w)
		next.ServeHTTP(ww, r)
		_, _ = ww.flush(r.Header.Get("If-None-Match"))
	})
}

type bufferedResponseWriter struct {
	http.ResponseWriter
	buf        *bytes.Buffer
	statusCode int
}

func newBufferedResponseWriter(w http.ResponseWriter) *bufferedResponseWriter {
	return &bufferedResponseWriter{w, new(bytes.Buffer), http.StatusOK}
}

func (w *bufferedResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *bufferedResponseWriter) WriteHeader(code int) {
	w.statusCode = code
}

func (w *bufferedResponseWriter) flush(ifNoneMatch string) (int64, error) {
	if w.statusCode < 200 || w.statusCode >= 300 {
		w.ResponseWriter.WriteHeader(w.statusCode)
		return w.buf.WriteTo(w.ResponseWriter)
	}

	etag := fmt.Sprintf("\"%x\"", md5.Sum(w.buf.Bytes()))
	w.Header().Set("ETag", etag)
	if ifNoneMatch == etag {
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Length")
		w.ResponseWriter.WriteHeader(http.StatusNotModified)
		return 0, nil
	}

	w.ResponseWriter.WriteHeader(w.statusCode)
	return w.buf.WriteTo(w.ResponseWriter)
}
