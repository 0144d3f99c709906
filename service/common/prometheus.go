package common

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type PrometheusArgs struct {
	MetricsPort uint `arg:"--metrics-port,env:ZEM_METRICS_PORT" help:"serve prometheus metrics on this port (0 disables)"`
}

// MetricsRouter returns a router serving the default prometheus registry on
// /metrics.
func MetricsRouter() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	return router
}

// StartPromMetricsServer serves MetricsRouter on port in the background. A
// zero port disables the server.
func StartPromMetricsServer(port uint, log *zap.Logger) *http.Server {
	if port == 0 {
		return nil
	}
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: MetricsRouter()}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("metric server stopped unexpectedly", zap.Error(err))
		}
	}()
	return srv
}
