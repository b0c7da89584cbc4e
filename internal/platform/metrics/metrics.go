// Package metrics expone métricas Prometheus del API (HTTP y de negocio).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "petadopt_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "petadopt_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})

	usersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petadopt_users_registered_total",
		Help: "Users created through /api/register",
	})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petadopt_logins_total",
		Help: "Login attempts by method and result",
	}, []string{"method", "result"})

	listings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petadopt_listings_total",
		Help: "Listing mutations by kind (pet, lost_pet) and action",
	}, []string{"kind", "action"})

	adoptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petadopt_adoption_transitions_total",
		Help: "Adoption requests by resulting status",
	}, []string{"status"})

	uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petadopt_photo_uploads_total",
		Help: "Photo uploads to the media host by folder and result",
	}, []string{"folder", "result"})

	passwordResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petadopt_password_resets_total",
		Help: "Password reset flow events (requested, completed, rejected)",
	}, []string{"event"})
)

// Handler sirve /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HTTP registra latencia por patrón de ruta de chi (no por path crudo, para acotar cardinalidad).
func HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if pattern := rc.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestDuration.WithLabelValues(r.Method, path, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

func UserRegistered() { usersRegistered.Inc() }

func Login(method string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	logins.WithLabelValues(method, result).Inc()
}

func Listing(kind, action string) { listings.WithLabelValues(kind, action).Inc() }

func Adoption(status string) { adoptions.WithLabelValues(status).Inc() }

func Upload(folder string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	uploads.WithLabelValues(folder, result).Inc()
}

func PasswordReset(event string) { passwordResets.WithLabelValues(event).Inc() }
