package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marcelojr/analise-judo/internal/platform/metrics"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID devolve o id de correlação da requisição, se houver.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestID reaproveita o X-Request-ID do cliente quando é um UUID válido.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// observar registra log de acesso e métricas por padrão de rota, não por URL,
// para não explodir a cardinalidade com ids.
func (a *API) observar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		rota := "nao_mapeada"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			rota = rctx.RoutePattern()
		}
		duracao := time.Since(inicio)
		metrics.ObserveHTTPRequest(rota, strconv.Itoa(rec.status), duracao.Seconds())
		a.logger.Info("requisicao",
			"metodo", r.Method,
			"rota", rota,
			"status", rec.status,
			"duracao_ms", duracao.Milliseconds(),
			"request_id", RequestID(r.Context()),
		)
	})
}
