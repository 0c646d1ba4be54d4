package middleware

import (
	"net/http"

	"github.com/garrettladley/moodly/internal/version"
	"github.com/garrettladley/moodly/internal/xhttp"
	"github.com/garrettladley/moodly/internal/xslog"
)

// VersionCheck rejects clients whose major version differs from the server's.
// Requests without a version header (browsers) pass through.
func VersionCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientVersion := r.Header.Get(version.Header)
		if clientVersion == "" {
			next.ServeHTTP(w, r)
			return
		}

		if verr := version.CheckCompatibility(clientVersion, version.Get()); verr != nil {
			xslog.FromContext(r.Context()).WarnContext(
				r.Context(),
				"client version incompatible",
				xslog.ClientVersion(verr.ClientVersion),
				xslog.Version(),
				xslog.RequestPath(r),
			)

			xhttp.WriteJSON(w, http.StatusUpgradeRequired, map[string]string{
				"message":        verr.Error(),
				"server_version": verr.ServerVersion,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
