// Package middleware strips cachebust fingerprints from request paths.
package middleware

import (
	"net/http"

	"github.com/dendrascience/cachebust/cachebust"
	"github.com/gorilla/mux"
)

// StripFingerprint returns middleware that rewrites a busted request path,
// such as /files/3de1e771.styles.css, back to the asset path
// /files/styles.css before calling the next handler. A path is only
// rewritten when it does not name an asset itself and the stripped path
// does, so real files that look busted, like /files/deadbeef.css, pass
// through untouched.
//
// It fails with cachebust.ErrUnsupportedOperation for engines using the
// Query method, whose fingerprint is not part of the path.
func StripFingerprint(e *cachebust.Engine) (mux.MiddlewareFunc, error) {
	if _, err := e.Pattern(); err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			original, ok := e.RecoverAsset(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			r2 := r.Clone(r.Context())
			r2.URL.Path = original
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
		})
	}, nil
}
