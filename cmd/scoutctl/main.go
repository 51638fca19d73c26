// Executável de administração: aplica migrations e consulta o classificador de zonas do tatame.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/app/tatame"
	"github.com/marcelojr/analise-judo/internal/domain"
	"github.com/marcelojr/analise-judo/internal/platform/config"
	"github.com/marcelojr/analise-judo/internal/platform/logger"
	"github.com/marcelojr/analise-judo/internal/platform/migrations"
	postgresstorage "github.com/marcelojr/analise-judo/internal/platform/storage/postgres"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scoutctl",
		Short:         "Administração do scout de judô",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// stdout fica reservado para a saída dos comandos.
			logger.SetOutput(cmd.ErrOrStderr())
		},
	}

	cmd.AddCommand(
		bancoCmd("migrate", "Aplica as migrations pendentes", migrations.Run),
		bancoCmd("rollback", "Desfaz a última migration aplicada", migrations.RollbackUltima),
		zonaCmd(),
	)
	return cmd
}

// bancoCmd conecta no banco configurado pelo ambiente e executa op.
func bancoCmd(use, short string, op func(*gorm.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.LogLevel)

			db, err := abrirBanco(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("conectar no banco: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := op(db); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			logger.Info("comando concluido", "comando", use, "driver", cfg.DBDriver)
			return nil
		},
	}
}

func zonaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zona",
		Short: "Classifica uma coordenada dos diagramas do tatame",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "quadrante X Y",
		Short: "Quadrante de tachi-waza (0 quando desconhecido)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lerPonto(args)
			if err != nil {
				return err
			}
			return imprimir(cmd.OutOrStdout(), strconv.Itoa(int(tatame.Quadrante(p))))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "direcao X Y",
		Short: "Direção de ne-waza",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lerPonto(args)
			if err != nil {
				return err
			}
			return imprimir(cmd.OutOrStdout(), string(tatame.DirecaoNewaza(p)))
		},
	})

	return cmd
}

func lerPonto(args []string) (domain.Ponto, error) {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return domain.Ponto{}, fmt.Errorf("X invalido %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return domain.Ponto{}, fmt.Errorf("Y invalido %q", args[1])
	}
	return domain.Ponto{X: x, Y: y}, nil
}

func imprimir(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

func abrirBanco(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return postgresstorage.OpenSQLite(ctx, cfg.SQLitePath)
	}
	return postgresstorage.Open(ctx, cfg.PostgresDSN())
}
