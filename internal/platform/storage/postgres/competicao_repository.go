package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/domain"
)

// CompeticaoRepository persiste competições; (nome, data) é único.
type CompeticaoRepository struct {
	db *gorm.DB
}

func NewCompeticaoRepository(db *gorm.DB) *CompeticaoRepository {
	return &CompeticaoRepository{db: db}
}

type competicaoModel struct {
	ID       string    `gorm:"column:id;primaryKey"`
	Nome     string    `gorm:"column:nome"`
	Data     time.Time `gorm:"column:data"`
	Classe   string    `gorm:"column:classe"`
	CriadoEm time.Time `gorm:"column:criado_em"`
}

func (competicaoModel) TableName() string {
	return "competicoes"
}

func (m competicaoModel) toDomain() domain.Competicao {
	return domain.Competicao{
		ID:       domain.CompeticaoID(m.ID),
		Nome:     m.Nome,
		Data:     m.Data.UTC(),
		Classe:   domain.Classe(m.Classe),
		CriadoEm: m.CriadoEm,
	}
}

func fromDomainCompeticao(c domain.Competicao) competicaoModel {
	return competicaoModel{
		ID:       string(c.ID),
		Nome:     c.Nome,
		Data:     c.Data,
		Classe:   string(c.Classe),
		CriadoEm: c.CriadoEm,
	}
}

func (r *CompeticaoRepository) Create(ctx context.Context, c domain.Competicao) error {
	model := fromDomainCompeticao(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&competicaoModel{}).
			Where("nome = ? AND data = ?", model.Nome, model.Data).
			Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return fmt.Errorf("%w: competicao %q em %s ja cadastrada",
				domain.ErrDuplicado, c.Nome, c.Data.Format(time.DateOnly))
		}
		return tx.Create(&model).Error
	})
	return traduzirErro("gorm competicao: inserir", err)
}

// Delete remove a competição e, em cascata, os confrontos dela.
func (r *CompeticaoRepository) Delete(ctx context.Context, id domain.CompeticaoID) error {
	res := r.db.WithContext(ctx).Delete(&competicaoModel{}, "id = ?", string(id))
	if res.Error != nil {
		return traduzirErro("gorm competicao: excluir", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: competicao %s", domain.ErrNaoEncontrado, id)
	}
	return nil
}

func (r *CompeticaoRepository) FindByID(ctx context.Context, id domain.CompeticaoID) (domain.Competicao, error) {
	var model competicaoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", string(id)).Error; err != nil {
		return domain.Competicao{}, traduzirErro("gorm competicao: buscar id", err)
	}
	return model.toDomain(), nil
}

func (r *CompeticaoRepository) List(ctx context.Context) ([]domain.Competicao, error) {
	var models []competicaoModel
	if err := r.db.WithContext(ctx).
		Order("data DESC").
		Order("nome ASC").
		Find(&models).Error; err != nil {
		return nil, traduzirErro("gorm competicao: listar", err)
	}

	result := make([]domain.Competicao, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.CompeticaoRepository = (*CompeticaoRepository)(nil)
