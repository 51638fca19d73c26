package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/domain"
)

type ConfrontoRepository struct {
	db *gorm.DB
}

func NewConfrontoRepository(db *gorm.DB) *ConfrontoRepository {
	return &ConfrontoRepository{db: db}
}

type confrontoModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	CompeticaoID    string     `gorm:"column:competicao_id"`
	Atleta1ID       string     `gorm:"column:atleta1_id"`
	Atleta2ID       string     `gorm:"column:atleta2_id"`
	VencedorID      *string    `gorm:"column:vencedor_id"`
	Categoria       string     `gorm:"column:categoria"`
	DuracaoSegundos *int64     `gorm:"column:duracao_segundos"`
	CriadoEm        time.Time  `gorm:"column:criado_em"`
	FinalizadoEm    *time.Time `gorm:"column:finalizado_em"`
}

func (confrontoModel) TableName() string {
	return "confrontos"
}

func (m confrontoModel) toDomain() domain.Confronto {
	c := domain.Confronto{
		ID:           domain.ConfrontoID(m.ID),
		CompeticaoID: domain.CompeticaoID(m.CompeticaoID),
		Atleta1ID:    domain.AtletaID(m.Atleta1ID),
		Atleta2ID:    domain.AtletaID(m.Atleta2ID),
		Categoria:    domain.Categoria(m.Categoria),
		CriadoEm:     m.CriadoEm,
		FinalizadoEm: m.FinalizadoEm,
	}
	if m.VencedorID != nil {
		vencedor := domain.AtletaID(*m.VencedorID)
		c.VencedorID = &vencedor
	}
	if m.DuracaoSegundos != nil {
		d := time.Duration(*m.DuracaoSegundos) * time.Second
		c.Duracao = &d
	}
	return c
}

func fromDomainConfronto(c domain.Confronto) confrontoModel {
	m := confrontoModel{
		ID:           string(c.ID),
		CompeticaoID: string(c.CompeticaoID),
		Atleta1ID:    string(c.Atleta1ID),
		Atleta2ID:    string(c.Atleta2ID),
		Categoria:    string(c.Categoria),
		CriadoEm:     c.CriadoEm,
		FinalizadoEm: c.FinalizadoEm,
	}
	if c.VencedorID != nil {
		v := string(*c.VencedorID)
		m.VencedorID = &v
	}
	if c.Duracao != nil {
		s := int64(c.Duracao.Seconds())
		m.DuracaoSegundos = &s
	}
	return m
}

// resumoRow recebe o resultado do join usado nas telas de listagem.
type resumoRow struct {
	Confronto      confrontoModel `gorm:"embedded"`
	CompeticaoNome string         `gorm:"column:competicao_nome"`
	Atleta1Nome    string         `gorm:"column:atleta1_nome"`
	Atleta2Nome    string         `gorm:"column:atleta2_nome"`
	VencedorNome   sql.NullString `gorm:"column:vencedor_nome"`
}

func (r resumoRow) toDomain() domain.ConfrontoResumo {
	return domain.ConfrontoResumo{
		Confronto:      r.Confronto.toDomain(),
		CompeticaoNome: r.CompeticaoNome,
		Atleta1Nome:    r.Atleta1Nome,
		Atleta2Nome:    r.Atleta2Nome,
		VencedorNome:   r.VencedorNome.String,
	}
}

const selectResumo = `
SELECT c.id, c.competicao_id, c.atleta1_id, c.atleta2_id, c.vencedor_id, c.categoria,
       c.duracao_segundos, c.criado_em, c.finalizado_em,
       comp.nome AS competicao_nome,
       a1.nome AS atleta1_nome,
       a2.nome AS atleta2_nome,
       v.nome AS vencedor_nome
FROM confrontos c
JOIN competicoes comp ON comp.id = c.competicao_id
JOIN atletas a1 ON a1.id = c.atleta1_id
JOIN atletas a2 ON a2.id = c.atleta2_id
LEFT JOIN atletas v ON v.id = c.vencedor_id`

func existe(tx *gorm.DB, model any, id string) (bool, error) {
	var total int64
	if err := tx.Model(model).Where("id = ?", id).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// buscarConfronto carrega o confronto dentro da transação corrente.
func buscarConfronto(tx *gorm.DB, id domain.ConfrontoID) (domain.Confronto, error) {
	var model confrontoModel
	if err := tx.First(&model, "id = ?", string(id)).Error; err != nil {
		return domain.Confronto{}, err
	}
	return model.toDomain(), nil
}

// Create confere competição e atletas antes do insert; as chaves estrangeiras
// continuam valendo para escritas concorrentes.
func (r *ConfrontoRepository) Create(ctx context.Context, c domain.Confronto) error {
	model := fromDomainConfronto(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := existe(tx, &competicaoModel{}, model.CompeticaoID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: competicao %s", domain.ErrNaoEncontrado, c.CompeticaoID)
		}

		for _, atleta := range []string{model.Atleta1ID, model.Atleta2ID} {
			ok, err := existe(tx, &atletaModel{}, atleta)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: atleta %s", domain.ErrNaoEncontrado, atleta)
			}
		}

		return tx.Create(&model).Error
	})
	return traduzirErro("gorm confronto: inserir", err)
}

// Finalizar grava vencedor e duração uma única vez. O WHERE vencedor_id IS NULL impede
// que duas finalizações concorrentes sobrescrevam uma à outra.
func (r *ConfrontoRepository) Finalizar(ctx context.Context, id domain.ConfrontoID, vencedor domain.AtletaID, duracao time.Duration, quando time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := buscarConfronto(tx, id)
		if err != nil {
			return err
		}
		if err := c.Finalizar(vencedor, duracao, quando); err != nil {
			return err
		}

		m := fromDomainConfronto(c)
		res := tx.Model(&confrontoModel{}).
			Where("id = ? AND vencedor_id IS NULL", m.ID).
			Updates(map[string]any{
				"vencedor_id":      m.VencedorID,
				"duracao_segundos": m.DuracaoSegundos,
				"finalizado_em":    m.FinalizadoEm,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: confronto %s ja finalizado", domain.ErrTransicaoInvalida, id)
		}
		return nil
	})
	return traduzirErro("gorm confronto: finalizar", err)
}

// Delete é o único "desfazer": ações e shidos do confronto caem junto.
func (r *ConfrontoRepository) Delete(ctx context.Context, id domain.ConfrontoID) error {
	res := r.db.WithContext(ctx).Delete(&confrontoModel{}, "id = ?", string(id))
	if res.Error != nil {
		return traduzirErro("gorm confronto: excluir", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: confronto %s", domain.ErrNaoEncontrado, id)
	}
	return nil
}

func (r *ConfrontoRepository) FindByID(ctx context.Context, id domain.ConfrontoID) (domain.Confronto, error) {
	c, err := buscarConfronto(r.db.WithContext(ctx), id)
	if err != nil {
		return domain.Confronto{}, traduzirErro("gorm confronto: buscar id", err)
	}
	return c, nil
}

func (r *ConfrontoRepository) Resumo(ctx context.Context, id domain.ConfrontoID) (domain.ConfrontoResumo, error) {
	var rows []resumoRow
	if err := r.db.WithContext(ctx).
		Raw(selectResumo+" WHERE c.id = ?", string(id)).
		Scan(&rows).Error; err != nil {
		return domain.ConfrontoResumo{}, traduzirErro("gorm confronto: resumo", err)
	}
	if len(rows) == 0 {
		return domain.ConfrontoResumo{}, fmt.Errorf("%w: confronto %s", domain.ErrNaoEncontrado, id)
	}
	return rows[0].toDomain(), nil
}

func (r *ConfrontoRepository) ListByCompeticao(ctx context.Context, id domain.CompeticaoID) ([]domain.ConfrontoResumo, error) {
	db := r.db.WithContext(ctx)

	ok, err := existe(db, &competicaoModel{}, string(id))
	if err != nil {
		return nil, traduzirErro("gorm confronto: listar por competicao", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: competicao %s", domain.ErrNaoEncontrado, id)
	}

	var rows []resumoRow
	if err := db.
		Raw(selectResumo+" WHERE c.competicao_id = ? ORDER BY c.criado_em ASC, c.id ASC", string(id)).
		Scan(&rows).Error; err != nil {
		return nil, traduzirErro("gorm confronto: listar por competicao", err)
	}

	result := make([]domain.ConfrontoResumo, len(rows))
	for i, row := range rows {
		result[i] = row.toDomain()
	}
	return result, nil
}

func (r *ConfrontoRepository) ContarEventos(ctx context.Context, id domain.ConfrontoID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT (SELECT COUNT(*) FROM acoes WHERE confronto_id = ?) +
			(SELECT COUNT(*) FROM shidos WHERE confronto_id = ?)`, string(id), string(id)).
		Scan(&total).Error
	if err != nil {
		return 0, traduzirErro("gorm confronto: contar eventos", err)
	}
	return total, nil
}

var _ domain.ConfrontoRepository = (*ConfrontoRepository)(nil)
