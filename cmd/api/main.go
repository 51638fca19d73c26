// Executável principal da API: carrega a configuração, inicializa dependências e sobe o servidor HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/app/httpapi"
	"github.com/marcelojr/analise-judo/internal/app/scout"
	"github.com/marcelojr/analise-judo/internal/domain"
	"github.com/marcelojr/analise-judo/internal/platform/clock"
	"github.com/marcelojr/analise-judo/internal/platform/config"
	"github.com/marcelojr/analise-judo/internal/platform/health"
	"github.com/marcelojr/analise-judo/internal/platform/ids"
	"github.com/marcelojr/analise-judo/internal/platform/logger"
	"github.com/marcelojr/analise-judo/internal/platform/migrations"
	postgresstorage "github.com/marcelojr/analise-judo/internal/platform/storage/postgres"
	redisstorage "github.com/marcelojr/analise-judo/internal/platform/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuracao invalida", "err", err)
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := abrirBanco(ctx, cfg)
	if err != nil {
		logger.Fatal("falha ao conectar no banco", "driver", cfg.DBDriver, "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao resgatar sql.DB", "err", err)
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			logger.Fatal("falha na migracao automatica", "err", err)
		}
	}

	// Redis só guarda o placar ao vivo; sem ele o placar é recalculado do banco.
	var (
		redisClient *redis.Client
		contador    domain.Contador
	)
	if cfg.RedisEnabled {
		redisClient, err = redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("falha ao conectar no redis", "err", err)
		}
		defer redisClient.Close()
		contador = redisstorage.NewContador(redisClient, cfg.PlacarKeyPrefix)
	}

	servico := scout.NewService(
		postgresstorage.NewAtletaRepository(db),
		postgresstorage.NewCompeticaoRepository(db),
		postgresstorage.NewConfrontoRepository(db),
		postgresstorage.NewAcaoRepository(db),
		postgresstorage.NewShidoRepository(db),
		contador,
		clock.NewSystemClock(),
		ids.DefaultGenerator(),
	)

	checker := health.NewChecker(sqlDB, redisClient)
	router := httpapi.New(servico, logger.L()).Routes()
	router.Get("/readyz", checker.ReadyHandler())
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("erro ao encerrar servidor", "err", err)
		}
	}()

	logger.Info("api ouvindo", "addr", cfg.HTTPAddress, "driver", cfg.DBDriver, "redis", cfg.RedisEnabled)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("erro no servidor", "err", err)
	}
	logger.Info("api encerrada")
}

func abrirBanco(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return postgresstorage.OpenSQLite(ctx, cfg.SQLitePath)
	}
	return postgresstorage.Open(ctx, cfg.PostgresDSN())
}
