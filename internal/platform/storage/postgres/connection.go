// Pacote postgres implementa a camada de persistência via GORM. O mesmo código atende o
// Postgres de produção e o SQLite usado em desenvolvimento local e nos testes.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

// Open abre o pool do Postgres. O pool vive o processo inteiro; cada operação do
// repositório apenas faz checkout de uma conexão.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("postgres gorm: abrir conexao: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres gorm: obter sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	if err := ping(ctx, gormDB); err != nil {
		return nil, err
	}

	return gormDB, nil
}

// OpenSQLite abre um arquivo SQLite (ou ":memory:") com chaves estrangeiras ligadas.
// SQLite aceita um único escritor, então o pool fica limitado a uma conexão; isso
// também mantém o banco em memória vivo entre as operações.
func OpenSQLite(ctx context.Context, path string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsnSQLite(path)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("sqlite gorm: abrir arquivo: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite gorm: obter sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := ping(ctx, gormDB); err != nil {
		return nil, err
	}

	return gormDB, nil
}

// dsnSQLite liga foreign_keys preservando parâmetros que já vieram no caminho.
func dsnSQLite(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("gorm: obter sql.DB: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctxPing); err != nil {
		return fmt.Errorf("gorm: ping falhou: %w", err)
	}
	return nil
}
