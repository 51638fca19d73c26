package domain

import (
	"fmt"
	"time"
)

// Finalizado indica que vencedor e duração já foram registrados.
func (c Confronto) Finalizado() bool {
	return c.VencedorID != nil
}

func (c Confronto) Participa(id AtletaID) bool {
	return id != "" && (id == c.Atleta1ID || id == c.Atleta2ID)
}

// PodeRegistrar valida se uma ação ou shido do atleta pode entrar no confronto.
func (c Confronto) PodeRegistrar(atleta AtletaID) error {
	if c.Finalizado() {
		return fmt.Errorf("%w: confronto %s ja finalizado", ErrTransicaoInvalida, c.ID)
	}
	if !c.Participa(atleta) {
		return fmt.Errorf("%w: atleta %s nao participa do confronto %s", ErrTransicaoInvalida, atleta, c.ID)
	}
	return nil
}

// Finalizar leva o confronto de aberto para finalizado. Não existe caminho de volta.
func (c *Confronto) Finalizar(vencedor AtletaID, duracao time.Duration, quando time.Time) error {
	if c.Finalizado() {
		return fmt.Errorf("%w: confronto %s ja finalizado", ErrTransicaoInvalida, c.ID)
	}
	if !c.Participa(vencedor) {
		return fmt.Errorf("%w: vencedor %s nao participa do confronto %s", ErrTransicaoInvalida, vencedor, c.ID)
	}
	if duracao < 0 {
		return fmt.Errorf("%w: duracao negativa", ErrValidacao)
	}
	c.VencedorID = &vencedor
	c.Duracao = &duracao
	c.FinalizadoEm = &quando
	return nil
}
