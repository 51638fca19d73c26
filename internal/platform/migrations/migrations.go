// Pacote migrations centraliza as versões gormigrate aplicadas na inicialização.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// O DDL é escrito à mão para deixar explícitos os ON DELETE e os índices únicos;
// os tipos usados funcionam tanto no Postgres quanto no SQLite dos testes.
var schemaInicial = []string{
	`CREATE TABLE IF NOT EXISTS atletas (
		id CHAR(26) PRIMARY KEY,
		nome TEXT NOT NULL,
		categoria TEXT NOT NULL,
		data_nascimento DATE NOT NULL,
		clube TEXT NOT NULL,
		criado_em TIMESTAMP NOT NULL,
		atualizado_em TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_atletas_identidade ON atletas (nome, data_nascimento, clube)`,
	`CREATE INDEX IF NOT EXISTS idx_atletas_clube ON atletas (clube)`,
	`CREATE TABLE IF NOT EXISTS competicoes (
		id CHAR(26) PRIMARY KEY,
		nome TEXT NOT NULL,
		data DATE NOT NULL,
		classe TEXT NOT NULL,
		criado_em TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_competicoes_identidade ON competicoes (nome, data)`,
	`CREATE TABLE IF NOT EXISTS confrontos (
		id CHAR(26) PRIMARY KEY,
		competicao_id CHAR(26) NOT NULL REFERENCES competicoes(id) ON DELETE CASCADE,
		atleta1_id CHAR(26) NOT NULL REFERENCES atletas(id) ON DELETE CASCADE,
		atleta2_id CHAR(26) NOT NULL REFERENCES atletas(id) ON DELETE CASCADE,
		vencedor_id CHAR(26) REFERENCES atletas(id) ON DELETE SET NULL,
		categoria TEXT NOT NULL,
		duracao_segundos BIGINT,
		criado_em TIMESTAMP NOT NULL,
		finalizado_em TIMESTAMP,
		CHECK (atleta1_id <> atleta2_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_confrontos_competicao ON confrontos (competicao_id)`,
	`CREATE INDEX IF NOT EXISTS idx_confrontos_atleta1 ON confrontos (atleta1_id)`,
	`CREATE INDEX IF NOT EXISTS idx_confrontos_atleta2 ON confrontos (atleta2_id)`,
	`CREATE TABLE IF NOT EXISTS acoes (
		id CHAR(26) PRIMARY KEY,
		confronto_id CHAR(26) NOT NULL REFERENCES confrontos(id) ON DELETE CASCADE,
		atleta_id CHAR(26) NOT NULL REFERENCES atletas(id) ON DELETE CASCADE,
		quadrante INTEGER,
		grupo_golpe TEXT,
		tempo_ocorrido TEXT NOT NULL,
		mao_direita TEXT,
		mao_esquerda TEXT,
		efetividade_golpe TEXT,
		newaza BOOLEAN NOT NULL DEFAULT FALSE,
		atleta_newaza_id CHAR(26) REFERENCES atletas(id) ON DELETE SET NULL,
		direcao TEXT,
		partida TEXT,
		efetividade_newaza TEXT,
		criado_em TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_acoes_confronto ON acoes (confronto_id)`,
	`CREATE TABLE IF NOT EXISTS shidos (
		id CHAR(26) PRIMARY KEY,
		confronto_id CHAR(26) NOT NULL REFERENCES confrontos(id) ON DELETE CASCADE,
		atleta_id CHAR(26) NOT NULL REFERENCES atletas(id) ON DELETE CASCADE,
		tipo TEXT NOT NULL,
		tempo_ocorrido TEXT NOT NULL,
		criado_em TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shidos_confronto ON shidos (confronto_id)`,
}

func lista() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202505010001_schema_inicial",
			Migrate: func(tx *gorm.DB) error {
				for _, ddl := range schemaInicial {
					if err := tx.Exec(ddl).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("shidos", "acoes", "confrontos", "competicoes", "atletas")
			},
		},
	}
}

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db nulo")
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, lista())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: falha ao aplicar: %w", err)
	}

	return nil
}

// RollbackUltima desfaz apenas a migração mais recente; exposto pelo scoutctl.
func RollbackUltima(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db nulo")
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, lista())
	if err := m.RollbackLast(); err != nil {
		return fmt.Errorf("migrations: falha no rollback: %w", err)
	}

	return nil
}
