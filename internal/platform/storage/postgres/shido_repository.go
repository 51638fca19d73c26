package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/domain"
)

type ShidoRepository struct {
	db *gorm.DB
}

func NewShidoRepository(db *gorm.DB) *ShidoRepository {
	return &ShidoRepository{db: db}
}

type shidoModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ConfrontoID   string    `gorm:"column:confronto_id"`
	AtletaID      string    `gorm:"column:atleta_id"`
	Tipo          string    `gorm:"column:tipo"`
	TempoOcorrido string    `gorm:"column:tempo_ocorrido"`
	CriadoEm      time.Time `gorm:"column:criado_em"`
}

func (shidoModel) TableName() string {
	return "shidos"
}

func (m shidoModel) toDomain() domain.Shido {
	return domain.Shido{
		ID:          domain.ShidoID(m.ID),
		ConfrontoID: domain.ConfrontoID(m.ConfrontoID),
		AtletaID:    domain.AtletaID(m.AtletaID),
		Tipo:        domain.TipoShido(m.Tipo),
		Tempo:       domain.FaixaTempo(m.TempoOcorrido),
		CriadoEm:    m.CriadoEm,
	}
}

func (r *ShidoRepository) Registrar(ctx context.Context, s domain.Shido) error {
	model := shidoModel{
		ID:            string(s.ID),
		ConfrontoID:   string(s.ConfrontoID),
		AtletaID:      string(s.AtletaID),
		Tipo:          string(s.Tipo),
		TempoOcorrido: string(s.Tempo),
		CriadoEm:      s.CriadoEm,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := buscarConfronto(tx, s.ConfrontoID)
		if err != nil {
			return err
		}
		if err := c.PodeRegistrar(s.AtletaID); err != nil {
			return err
		}
		return tx.Create(&model).Error
	})
	return traduzirErro("gorm shido: registrar", err)
}

func (r *ShidoRepository) ListByConfronto(ctx context.Context, id domain.ConfrontoID) ([]domain.Shido, error) {
	db := r.db.WithContext(ctx)

	ok, err := existe(db, &confrontoModel{}, string(id))
	if err != nil {
		return nil, traduzirErro("gorm shido: listar", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: confronto %s", domain.ErrNaoEncontrado, id)
	}

	var models []shidoModel
	if err := db.Where("confronto_id = ?", string(id)).
		Order("criado_em ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, traduzirErro("gorm shido: listar", err)
	}

	result := make([]domain.Shido, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.ShidoRepository = (*ShidoRepository)(nil)
