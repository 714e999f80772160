package api

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
)

// contentETag is a strong validator derived from the SHA-256 of body.
func contentETag(body []byte) string {
	h := sha256.Sum256(body)
	return fmt.Sprintf(`"%x"`, h[:16])
}

// writeCached writes body with an ETag and answers a matching
// If-None-Match with 304.
func writeCached(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := contentETag(body)
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}
