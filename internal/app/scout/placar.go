package scout

import (
	"context"
	"fmt"

	"github.com/marcelojr/analise-judo/internal/domain"
	"github.com/marcelojr/analise-judo/internal/platform/logger"
)

const (
	campoYuko    = "yuko"
	campoWazaAri = "waza_ari"
	campoIppon   = "ippon"
	campoShido   = "shido"
)

var camposPlacar = []string{campoYuko, campoWazaAri, campoIppon, campoShido}

func ChavePlacar(confronto domain.ConfrontoID, atleta domain.AtletaID, campo string) string {
	return fmt.Sprintf("confronto:%s:atleta:%s:%s", confronto, atleta, campo)
}

// ChaveEventos conta ações e shidos refletidos nos contadores. É comparada com o
// banco a cada leitura para descobrir incrementos perdidos.
func ChaveEventos(confronto domain.ConfrontoID) string {
	return fmt.Sprintf("confronto:%s:eventos", confronto)
}

func chavesDoConfronto(c domain.Confronto) []string {
	chaves := make([]string, 0, 2*len(camposPlacar)+1)
	for _, atleta := range []domain.AtletaID{c.Atleta1ID, c.Atleta2ID} {
		for _, campo := range camposPlacar {
			chaves = append(chaves, ChavePlacar(c.ID, atleta, campo))
		}
	}
	return append(chaves, ChaveEventos(c.ID))
}

func valoresDoPlacar(p domain.PlacarAtleta) map[string]int64 {
	return map[string]int64{
		campoYuko:    p.Yuko,
		campoWazaAri: p.WazaAri,
		campoIppon:   p.Ippon,
		campoShido:   p.Shidos,
	}
}

// atualizarPlacar roda depois do commit e conta um evento mesmo sem pontos. Uma
// falha aqui só é logada: o contador de eventos fica atrás do banco e a próxima
// leitura recalcula o placar.
func (s *Service) atualizarPlacar(ctx context.Context, confronto domain.ConfrontoID, pontos ...domain.PlacarAtleta) {
	if s.contador == nil {
		return
	}

	deltas := map[string]int64{ChaveEventos(confronto): 1}
	for _, p := range pontos {
		for campo, valor := range valoresDoPlacar(p) {
			if valor != 0 {
				deltas[ChavePlacar(p.ConfrontoID, p.AtletaID, campo)] += valor
			}
		}
	}

	if err := s.contador.Incrementar(ctx, deltas); err != nil {
		logger.Warn("falha ao atualizar placar ao vivo", "confronto", confronto, "err", err)
	}
}

// placarAoVivo devolve ok=false quando os contadores não batem com o banco.
func (s *Service) placarAoVivo(ctx context.Context, c domain.Confronto) ([]domain.PlacarAtleta, bool, error) {
	valores, err := s.contador.ObterTodos(ctx, chavesDoConfronto(c))
	if err != nil {
		return nil, false, err
	}
	eventos, err := s.confrontos.ContarEventos(ctx, c.ID)
	if err != nil {
		return nil, false, err
	}
	if valores[ChaveEventos(c.ID)] != eventos {
		return nil, false, nil
	}

	placar := make([]domain.PlacarAtleta, 0, 2)
	for _, atleta := range []domain.AtletaID{c.Atleta1ID, c.Atleta2ID} {
		placar = append(placar, domain.PlacarAtleta{
			ConfrontoID: c.ID,
			AtletaID:    atleta,
			Yuko:        valores[ChavePlacar(c.ID, atleta, campoYuko)],
			WazaAri:     valores[ChavePlacar(c.ID, atleta, campoWazaAri)],
			Ippon:       valores[ChavePlacar(c.ID, atleta, campoIppon)],
			Shidos:      valores[ChavePlacar(c.ID, atleta, campoShido)],
		})
	}
	return placar, true, nil
}

// ressemearPlacar grava o placar recalculado por cima do que estiver no Redis.
func (s *Service) ressemearPlacar(ctx context.Context, c domain.Confronto, placar []domain.PlacarAtleta, eventos int) {
	valores := map[string]int64{ChaveEventos(c.ID): int64(eventos)}
	for _, p := range placar {
		for campo, valor := range valoresDoPlacar(p) {
			valores[ChavePlacar(c.ID, p.AtletaID, campo)] = valor
		}
	}
	if err := s.contador.Definir(ctx, valores); err != nil {
		logger.Warn("falha ao ressemear placar ao vivo", "confronto", c.ID, "err", err)
	}
}
