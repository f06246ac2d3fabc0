package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	userIdHeader = "X-User-Id"
	apiPrefix    = "/api/"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {
	r.Use(requestLogging)
	r.Use(propagateUser)
}

// propagateUser puts the caller identified by the X-User-Id header into the
// request context, keeping the Authorization header for the finance API.
// API requests without a user are rejected.
func propagateUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		uid := strings.TrimSpace(req.Header.Get(userIdHeader))
		if uid == "" {
			if strings.HasPrefix(req.URL.Path, apiPrefix) {
				log.Debugf("rejecting %s %s without user", req.Method, req.URL.Path)
				rest.WriteError(w, http.StatusForbidden, "User not found", "missing "+userIdHeader+" header")
				return
			}
			next.ServeHTTP(w, req)
			return
		}

		ctx := user.WithUser(req.Context(), user.User{
			Uid:   uid,
			Token: req.Header.Get("Authorization"),
		})
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		entry := log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		})
		if recorder.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	})
}
