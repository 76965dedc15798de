package metrics

import (
	"context"
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the admin mux serving /metrics and /health.
func Handler() http.Handler {
	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return &admin
}

// Serve runs the admin server on addr until ctx is cancelled. An empty addr
// disables it.
func Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	s := &http.Server{Addr: addr, Handler: Handler()}

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.New("shutting down the admin server failed").
				WithTag("addr", s.Addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", s.Addr).Info("starting admin server")
	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed:
		logs.WithTag("addr", s.Addr).Info("stopping admin server")
	default:
		logs.Warn(errors.New("admin server stopped").
			WithTag("addr", s.Addr).
			Wrap(err))
	}
}
