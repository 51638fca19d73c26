// Pacote health responde ao readiness probe checando banco e, quando ligado, o Redis do placar.
package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusOK           = "ok"
	statusIndisponivel = "indisponivel"
)

type Checker struct {
	db      *sql.DB
	redis   *redis.Client
	timeout time.Duration
}

func NewChecker(db *sql.DB, redis *redis.Client) *Checker {
	return &Checker{db: db, redis: redis, timeout: 2 * time.Second}
}

// Relatorio é o corpo devolvido pelo /readyz.
type Relatorio struct {
	Status       string            `json:"status"`
	Dependencias map[string]string `json:"dependencias"`
}

// Check consulta todas as dependências configuradas, sem parar na primeira falha.
func (c *Checker) Check(ctx context.Context) Relatorio {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rel := Relatorio{Status: statusOK, Dependencias: map[string]string{}}

	if c.db != nil {
		rel.Dependencias["banco"] = statusOK
		if err := c.db.PingContext(ctx); err != nil {
			rel.Dependencias["banco"] = statusIndisponivel
			rel.Status = statusIndisponivel
		}
	}

	if c.redis != nil {
		rel.Dependencias["redis"] = statusOK
		if err := c.redis.Ping(ctx).Err(); err != nil {
			rel.Dependencias["redis"] = statusIndisponivel
			rel.Status = statusIndisponivel
		}
	}

	return rel
}

func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := c.Check(r.Context())

		code := http.StatusOK
		if rel.Status != statusOK {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(rel)
	}
}
