package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/domain"
)

// AcaoRepository grava as ações de um confronto. Ações nunca são alteradas;
// saem do banco apenas junto com o confronto ou o atleta.
type AcaoRepository struct {
	db *gorm.DB
}

func NewAcaoRepository(db *gorm.DB) *AcaoRepository {
	return &AcaoRepository{db: db}
}

type acaoModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	ConfrontoID       string    `gorm:"column:confronto_id"`
	AtletaID          string    `gorm:"column:atleta_id"`
	Quadrante         *int      `gorm:"column:quadrante"`
	GrupoGolpe        *string   `gorm:"column:grupo_golpe"`
	TempoOcorrido     string    `gorm:"column:tempo_ocorrido"`
	MaoDireita        *string   `gorm:"column:mao_direita"`
	MaoEsquerda       *string   `gorm:"column:mao_esquerda"`
	EfetividadeGolpe  *string   `gorm:"column:efetividade_golpe"`
	Newaza            bool      `gorm:"column:newaza"`
	AtletaNewazaID    *string   `gorm:"column:atleta_newaza_id"`
	Direcao           *string   `gorm:"column:direcao"`
	Partida           *string   `gorm:"column:partida"`
	EfetividadeNewaza *string   `gorm:"column:efetividade_newaza"`
	CriadoEm          time.Time `gorm:"column:criado_em"`
}

func (acaoModel) TableName() string {
	return "acoes"
}

// opcional grava texto vazio como NULL.
func opcional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func texto(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fromDomainAcao(a domain.Acao) acaoModel {
	m := acaoModel{
		ID:                string(a.ID),
		ConfrontoID:       string(a.ConfrontoID),
		AtletaID:          string(a.AtletaID),
		GrupoGolpe:        opcional(string(a.GrupoGolpe)),
		TempoOcorrido:     string(a.Tempo),
		MaoDireita:        opcional(string(a.MaoDireita)),
		MaoEsquerda:       opcional(string(a.MaoEsquerda)),
		EfetividadeGolpe:  opcional(string(a.EfetividadeGolpe)),
		Newaza:            a.Newaza,
		Partida:           opcional(string(a.Partida)),
		EfetividadeNewaza: opcional(string(a.EfetividadeNewaza)),
		CriadoEm:          a.CriadoEm,
	}
	if a.Quadrante.Definido() {
		q := int(a.Quadrante)
		m.Quadrante = &q
	}
	if a.AtletaNewazaID != nil {
		m.AtletaNewazaID = opcional(string(*a.AtletaNewazaID))
	}
	if a.Direcao != domain.DirecaoIndefinida {
		m.Direcao = opcional(string(a.Direcao))
	}
	return m
}

func (m acaoModel) toDomain() domain.Acao {
	a := domain.Acao{
		ID:                domain.AcaoID(m.ID),
		ConfrontoID:       domain.ConfrontoID(m.ConfrontoID),
		AtletaID:          domain.AtletaID(m.AtletaID),
		GrupoGolpe:        domain.GrupoGolpe(texto(m.GrupoGolpe)),
		Tempo:             domain.FaixaTempo(m.TempoOcorrido),
		MaoDireita:        domain.Pegada(texto(m.MaoDireita)),
		MaoEsquerda:       domain.Pegada(texto(m.MaoEsquerda)),
		EfetividadeGolpe:  domain.EfetividadeGolpe(texto(m.EfetividadeGolpe)),
		Newaza:            m.Newaza,
		Direcao:           domain.DirecaoIndefinida,
		Partida:           domain.OrigemNewaza(texto(m.Partida)),
		EfetividadeNewaza: domain.EfetividadeNewaza(texto(m.EfetividadeNewaza)),
		CriadoEm:          m.CriadoEm,
	}
	if m.Quadrante != nil {
		a.Quadrante = domain.Quadrante(*m.Quadrante)
	}
	if m.AtletaNewazaID != nil {
		id := domain.AtletaID(*m.AtletaNewazaID)
		a.AtletaNewazaID = &id
	}
	if m.Direcao != nil {
		a.Direcao = domain.DirecaoNewaza(*m.Direcao)
	}
	return a
}

// Registrar insere a ação na mesma transação que confere o estado do confronto,
// assim uma finalização concorrente não deixa passar ação em confronto encerrado.
func (r *AcaoRepository) Registrar(ctx context.Context, acao domain.Acao) error {
	model := fromDomainAcao(acao)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := buscarConfronto(tx, acao.ConfrontoID)
		if err != nil {
			return err
		}
		if err := c.PodeRegistrar(acao.AtletaID); err != nil {
			return err
		}
		if acao.Newaza && acao.AtletaNewazaID != nil && !c.Participa(*acao.AtletaNewazaID) {
			return fmt.Errorf("%w: atleta %s nao participa do confronto %s",
				domain.ErrTransicaoInvalida, *acao.AtletaNewazaID, c.ID)
		}
		return tx.Create(&model).Error
	})
	return traduzirErro("gorm acao: registrar", err)
}

func (r *AcaoRepository) ListByConfronto(ctx context.Context, id domain.ConfrontoID) ([]domain.Acao, error) {
	db := r.db.WithContext(ctx)

	ok, err := existe(db, &confrontoModel{}, string(id))
	if err != nil {
		return nil, traduzirErro("gorm acao: listar", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: confronto %s", domain.ErrNaoEncontrado, id)
	}

	var models []acaoModel
	if err := db.Where("confronto_id = ?", string(id)).
		Order("criado_em ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, traduzirErro("gorm acao: listar", err)
	}

	result := make([]domain.Acao, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.AcaoRepository = (*AcaoRepository)(nil)
