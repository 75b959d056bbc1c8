package middleware

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"tracker/internal/response"

	"github.com/go-faster/jx"
)

// JSONBody rejects request bodies declared as JSON that are malformed (400) or larger
// than maxBytes (413). Valid bodies are handed on unchanged.
func JSONBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || !IsJSON(r.Header.Get("Content-Type")) {
				next.ServeHTTP(w, r)
				return
			}

			b, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
			_ = r.Body.Close()
			if err != nil {
				response.Error(w, http.StatusBadRequest, "failed to read request body")
				return
			}
			if int64(len(b)) > maxBytes {
				response.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxBytes))
				return
			}

			if len(bytes.TrimSpace(b)) > 0 {
				if err := jx.DecodeBytes(b).Validate(); err != nil {
					response.Error(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
					return
				}
			}

			r.Body = io.NopCloser(bytes.NewReader(b))
			r.ContentLength = int64(len(b))
			next.ServeHTTP(w, r)
		})
	}
}

// IsJSON reports whether contentType names a JSON media type.
func IsJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
