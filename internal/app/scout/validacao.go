package scout

import (
	"fmt"
	"strings"

	"github.com/marcelojr/analise-judo/internal/domain"
)

// As validações cobrem presença de campos e pertencimento aos vocabulários fechados.

func validarAtleta(a domain.Atleta) error {
	switch {
	case strings.TrimSpace(a.Nome) == "":
		return fmt.Errorf("%w: nome obrigatorio", domain.ErrValidacao)
	case !a.Categoria.Valido():
		return fmt.Errorf("%w: categoria %q invalida", domain.ErrValidacao, a.Categoria)
	case a.DataNascimento.IsZero() || a.AnoNascimento() <= 0:
		return fmt.Errorf("%w: ano de nascimento obrigatorio", domain.ErrValidacao)
	case !a.Clube.Valido():
		return fmt.Errorf("%w: clube %q invalido", domain.ErrValidacao, a.Clube)
	}
	return nil
}

func validarCompeticao(c domain.Competicao) error {
	switch {
	case strings.TrimSpace(c.Nome) == "":
		return fmt.Errorf("%w: nome obrigatorio", domain.ErrValidacao)
	case c.Data.IsZero():
		return fmt.Errorf("%w: data obrigatoria", domain.ErrValidacao)
	case !c.Classe.Valido():
		return fmt.Errorf("%w: classe %q invalida", domain.ErrValidacao, c.Classe)
	}
	return nil
}

func validarConfronto(c domain.Confronto) error {
	switch {
	case c.CompeticaoID == "":
		return fmt.Errorf("%w: competicao obrigatoria", domain.ErrValidacao)
	case c.Atleta1ID == "" || c.Atleta2ID == "":
		return fmt.Errorf("%w: os dois atletas sao obrigatorios", domain.ErrValidacao)
	case c.Atleta1ID == c.Atleta2ID:
		return fmt.Errorf("%w: um atleta nao pode lutar contra si mesmo", domain.ErrValidacao)
	case !c.Categoria.Valido():
		return fmt.Errorf("%w: categoria %q invalida", domain.ErrValidacao, c.Categoria)
	}
	return nil
}

// validarAcao aceita campos opcionais vazios; quando preenchidos, precisam estar no vocabulário.
func validarAcao(a domain.Acao) error {
	switch {
	case a.ConfrontoID == "":
		return fmt.Errorf("%w: confronto obrigatorio", domain.ErrValidacao)
	case a.AtletaID == "":
		return fmt.Errorf("%w: atleta obrigatorio", domain.ErrValidacao)
	case !a.Tempo.Valido():
		return fmt.Errorf("%w: tempo %q invalido", domain.ErrValidacao, a.Tempo)
	case a.Quadrante != domain.QuadranteDesconhecido && !a.Quadrante.Definido():
		return fmt.Errorf("%w: quadrante %d invalido", domain.ErrValidacao, a.Quadrante)
	case a.GrupoGolpe != "" && !a.GrupoGolpe.Valido():
		return fmt.Errorf("%w: grupo de golpe %q invalido", domain.ErrValidacao, a.GrupoGolpe)
	case a.MaoDireita != "" && !a.MaoDireita.Valido():
		return fmt.Errorf("%w: pegada %q invalida", domain.ErrValidacao, a.MaoDireita)
	case a.MaoEsquerda != "" && !a.MaoEsquerda.Valido():
		return fmt.Errorf("%w: pegada %q invalida", domain.ErrValidacao, a.MaoEsquerda)
	case a.EfetividadeGolpe != "" && !a.EfetividadeGolpe.Valido():
		return fmt.Errorf("%w: efetividade %q invalida", domain.ErrValidacao, a.EfetividadeGolpe)
	case !a.Direcao.Valido():
		return fmt.Errorf("%w: direcao %q invalida", domain.ErrValidacao, a.Direcao)
	case a.Partida != "" && !a.Partida.Valido():
		return fmt.Errorf("%w: partida %q invalida", domain.ErrValidacao, a.Partida)
	case a.EfetividadeNewaza != "" && !a.EfetividadeNewaza.Valido():
		return fmt.Errorf("%w: efetividade de newaza %q invalida", domain.ErrValidacao, a.EfetividadeNewaza)
	}
	return nil
}

func validarShido(s domain.Shido) error {
	switch {
	case s.ConfrontoID == "":
		return fmt.Errorf("%w: confronto obrigatorio", domain.ErrValidacao)
	case s.AtletaID == "":
		return fmt.Errorf("%w: atleta obrigatorio", domain.ErrValidacao)
	case !s.Tipo.Valido():
		return fmt.Errorf("%w: tipo de shido %q invalido", domain.ErrValidacao, s.Tipo)
	case !s.Tempo.Valido():
		return fmt.Errorf("%w: tempo %q invalido", domain.ErrValidacao, s.Tempo)
	}
	return nil
}
