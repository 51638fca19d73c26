package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"

	"github.com/marcelojr/analise-judo/internal/domain"
	"github.com/marcelojr/analise-judo/internal/platform/logger"
	"github.com/marcelojr/analise-judo/internal/platform/metrics"
)

// traduzirErro é a fronteira do repositório: nenhum erro de driver sai daqui sem
// antes ser convertido para um dos erros de domínio. A mensagem original vai só para o log.
func traduzirErro(op string, err error) error {
	if err == nil {
		return nil
	}

	traduzido := classificar(op, err)
	tipo := domain.TipoDoErro(traduzido)
	if tipo == "conexao" || tipo == "armazenamento" {
		logger.Error("falha no repositorio", "op", op, "err", err)
	}
	metrics.IncErroRepositorio(tipo)
	return traduzido
}

func classificar(op string, err error) error {
	switch {
	case jaTraduzido(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNaoEncontrado, op)
	case errors.Is(err, gorm.ErrDuplicatedKey) || contem(err, "duplicate key", "unique constraint", "23505"):
		return fmt.Errorf("%w: %s", domain.ErrDuplicado, op)
	case errors.Is(err, gorm.ErrForeignKeyViolated) || contem(err, "foreign key constraint", "23503"):
		return fmt.Errorf("%w: %s: referencia inexistente", domain.ErrNaoEncontrado, op)
	case errors.Is(err, gorm.ErrCheckConstraintViolated) || contem(err, "check constraint", "23514"):
		return fmt.Errorf("%w: %s", domain.ErrValidacao, op)
	case erroDeConexao(err):
		return fmt.Errorf("%w: %s", domain.ErrConexao, op)
	default:
		return fmt.Errorf("%w: %s", domain.ErrArmazenamento, op)
	}
}

func jaTraduzido(err error) bool {
	for _, alvo := range []error{
		domain.ErrValidacao,
		domain.ErrNaoEncontrado,
		domain.ErrDuplicado,
		domain.ErrTransicaoInvalida,
		domain.ErrConexao,
		domain.ErrArmazenamento,
	} {
		if errors.Is(err, alvo) {
			return true
		}
	}
	return false
}

func erroDeConexao(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return contem(err, "database is closed", "connection refused", "failed to connect", "broken pipe")
}

// contem cobre drivers que não expõem códigos tipados (lib/pq, pgx embrulhado, mattn).
func contem(err error, trechos ...string) bool {
	s := strings.ToLower(err.Error())
	for _, t := range trechos {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
