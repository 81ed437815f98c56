package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/circlein/CIN-BookingService/pkg/metrics"
)

// statusRecorder перехватывает статус код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush пробрасывает сброс буфера нижележащему writer'у.
// Без этого SSE-обработчик не видит http.Flusher за middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// MetricsMiddleware собирает HTTP метрики по каждому запросу.
// В качестве endpoint используется шаблон маршрута mux, а не сырой путь,
// чтобы не плодить метки на каждый ID.
func MetricsMiddleware(collector *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			collector.ObserveHTTPRequest(r.Method, endpoint, recorder.status, time.Since(start).Seconds())
		})
	}
}
