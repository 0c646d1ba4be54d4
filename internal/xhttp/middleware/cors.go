package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/garrettladley/moodly/internal/xhttp"
)

const corsMaxAge = 600

var (
	corsAllowedMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsAllowedHeaders = strings.Join([]string{
		xhttp.ContentType, xhttp.Authorization,
	}, ", ")
)

// CORS allows credentialed cross-origin requests from the listed origins and
// answers preflight requests without calling next.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(xhttp.Origin)
			if origin != "" && slices.Contains(allowedOrigins, origin) {
				h := w.Header()
				h.Set(xhttp.AccessControlAllowOrigin, origin)
				h.Set(xhttp.AccessControlAllowCredentials, "true")
				h.Add(xhttp.Vary, xhttp.Origin)

				if r.Method == http.MethodOptions {
					h.Set(xhttp.AccessControlAllowMethods, corsAllowedMethods)
					h.Set(xhttp.AccessControlAllowHeaders, corsAllowedHeaders)
					h.Set(xhttp.AccessControlMaxAge, strconv.Itoa(corsMaxAge))
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
