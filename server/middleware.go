package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/errx"
)

const RequestIDHeader = "X-Request-Id"

type responseWriter struct {
	http.ResponseWriter
	status int
	err    errx.Error
}

func (r *responseWriter) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// setError hands the request error to the logging middleware.
func setError(w http.ResponseWriter, err errx.Error) {
	if rw, ok := w.(*responseWriter); ok {
		rw.err = err
	}
}

// LoggerMiddleware tags every request with an id and logs its outcome.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t := time.Now()
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, req)

		fields := logrus.Fields{
			"endpoint":  fmt.Sprintf("%s %s", req.Method, req.URL.Path),
			"duration":  time.Since(t).String(),
			"status":    rw.status,
			"requestId": id,
		}
		if q := req.URL.Query(); len(q) > 0 {
			fields["query"] = q
		}
		log := logrus.WithTime(t).WithContext(req.Context()).WithFields(fields)
		switch {
		case rw.err == nil:
			log.Info("handle request success")
		case rw.err.Type() == errx.TypeInternal:
			log.WithError(rw.err).Error("handle request failed")
		default:
			log.WithError(rw.err).Warn("handle request failed")
		}
	})
}
