package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/domain"
)

// AtletaRepository persiste atletas; a identidade (nome, nascimento, clube) é única.
type AtletaRepository struct {
	db *gorm.DB
}

func NewAtletaRepository(db *gorm.DB) *AtletaRepository {
	return &AtletaRepository{db: db}
}

type atletaModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Nome           string    `gorm:"column:nome"`
	Categoria      string    `gorm:"column:categoria"`
	DataNascimento time.Time `gorm:"column:data_nascimento"`
	Clube          string    `gorm:"column:clube"`
	CriadoEm       time.Time `gorm:"column:criado_em"`
	AtualizadoEm   time.Time `gorm:"column:atualizado_em"`
}

func (atletaModel) TableName() string {
	return "atletas"
}

func (m atletaModel) toDomain() domain.Atleta {
	return domain.Atleta{
		ID:             domain.AtletaID(m.ID),
		Nome:           m.Nome,
		Categoria:      domain.Categoria(m.Categoria),
		DataNascimento: m.DataNascimento.UTC(),
		Clube:          domain.Clube(m.Clube),
		CriadoEm:       m.CriadoEm,
		AtualizadoEm:   m.AtualizadoEm,
	}
}

func fromDomainAtleta(a domain.Atleta) atletaModel {
	return atletaModel{
		ID:             string(a.ID),
		Nome:           a.Nome,
		Categoria:      string(a.Categoria),
		DataNascimento: a.DataNascimento,
		Clube:          string(a.Clube),
		CriadoEm:       a.CriadoEm,
		AtualizadoEm:   a.AtualizadoEm,
	}
}

// existeIdentidade procura outro atleta com a mesma identidade, ignorando ignorarID.
func existeIdentidade(tx *gorm.DB, m atletaModel, ignorarID string) (bool, error) {
	var total int64
	q := tx.Model(&atletaModel{}).
		Where("nome = ? AND data_nascimento = ? AND clube = ?", m.Nome, m.DataNascimento, m.Clube)
	if ignorarID != "" {
		q = q.Where("id <> ?", ignorarID)
	}
	if err := q.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *AtletaRepository) Create(ctx context.Context, a domain.Atleta) error {
	model := fromDomainAtleta(a)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A checagem dá uma mensagem melhor; quem garante a unicidade sob concorrência
		// é o índice ux_atletas_identidade.
		existe, err := existeIdentidade(tx, model, "")
		if err != nil {
			return err
		}
		if existe {
			return fmt.Errorf("%w: atleta %q (%d, %s) ja cadastrado",
				domain.ErrDuplicado, a.Nome, a.AnoNascimento(), a.Clube)
		}
		return tx.Create(&model).Error
	})
	return traduzirErro("gorm atleta: inserir", err)
}

func (r *AtletaRepository) Update(ctx context.Context, a domain.Atleta) error {
	model := fromDomainAtleta(a)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual atletaModel
		if err := tx.First(&atual, "id = ?", model.ID).Error; err != nil {
			return err
		}

		existe, err := existeIdentidade(tx, model, model.ID)
		if err != nil {
			return err
		}
		if existe {
			return fmt.Errorf("%w: outro atleta ja usa %q (%d, %s)",
				domain.ErrDuplicado, a.Nome, a.AnoNascimento(), a.Clube)
		}

		return tx.Model(&atletaModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]any{
				"nome":            model.Nome,
				"categoria":       model.Categoria,
				"data_nascimento": model.DataNascimento,
				"clube":           model.Clube,
				"atualizado_em":   model.AtualizadoEm,
			}).Error
	})
	return traduzirErro("gorm atleta: atualizar", err)
}

// Delete remove o atleta; as chaves estrangeiras levam junto os confrontos dele e as ações desses confrontos.
func (r *AtletaRepository) Delete(ctx context.Context, id domain.AtletaID) error {
	res := r.db.WithContext(ctx).Delete(&atletaModel{}, "id = ?", string(id))
	if res.Error != nil {
		return traduzirErro("gorm atleta: excluir", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: atleta %s", domain.ErrNaoEncontrado, id)
	}
	return nil
}

func (r *AtletaRepository) FindByID(ctx context.Context, id domain.AtletaID) (domain.Atleta, error) {
	var model atletaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", string(id)).Error; err != nil {
		return domain.Atleta{}, traduzirErro("gorm atleta: buscar id", err)
	}
	return model.toDomain(), nil
}

func (r *AtletaRepository) List(ctx context.Context) ([]domain.Atleta, error) {
	return r.listar(r.db.WithContext(ctx))
}

func (r *AtletaRepository) ListByClube(ctx context.Context, clube domain.Clube) ([]domain.Atleta, error) {
	return r.listar(r.db.WithContext(ctx).Where("clube = ?", string(clube)))
}

func (r *AtletaRepository) listar(q *gorm.DB) ([]domain.Atleta, error) {
	var models []atletaModel
	if err := q.Order("nome ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, traduzirErro("gorm atleta: listar", err)
	}

	result := make([]domain.Atleta, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.AtletaRepository = (*AtletaRepository)(nil)
