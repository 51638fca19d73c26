package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "judo_http_requests_total",
		Help: "Total de requisicoes HTTP por rota e status",
	}, []string{"rota", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "judo_http_request_duration_seconds",
		Help:    "Tempo de resposta das rotas HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"rota"})

	acoesRegistradas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "judo_acoes_registradas_total",
		Help: "Acoes registradas por efetividade do golpe",
	}, []string{"efetividade"})

	shidosRegistrados = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "judo_shidos_registrados_total",
		Help: "Shidos registrados por tipo",
	}, []string{"tipo"})

	confrontosFinalizados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "judo_confrontos_finalizados_total",
		Help: "Confrontos que receberam vencedor e duracao",
	})

	errosRepositorio = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "judo_erros_repositorio_total",
		Help: "Falhas devolvidas pela camada de persistencia por tipo",
	}, []string{"tipo"})
)

func ObserveHTTPRequest(rota, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(rota, status).Inc()
	httpRequestDuration.WithLabelValues(rota).Observe(seconds)
}

func IncAcaoRegistrada(efetividade string) {
	if efetividade == "" {
		efetividade = "nao_informada"
	}
	acoesRegistradas.WithLabelValues(efetividade).Inc()
}

func IncShidoRegistrado(tipo string) {
	shidosRegistrados.WithLabelValues(tipo).Inc()
}

func IncConfrontoFinalizado() {
	confrontosFinalizados.Inc()
}

func IncErroRepositorio(tipo string) {
	errosRepositorio.WithLabelValues(tipo).Inc()
}
