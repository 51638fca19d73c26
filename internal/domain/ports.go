package domain

import (
	"context"
	"time"
)

type AtletaRepository interface {
	Create(ctx context.Context, a Atleta) error
	Update(ctx context.Context, a Atleta) error
	Delete(ctx context.Context, id AtletaID) error
	FindByID(ctx context.Context, id AtletaID) (Atleta, error)
	List(ctx context.Context) ([]Atleta, error)
	ListByClube(ctx context.Context, clube Clube) ([]Atleta, error)
}

type CompeticaoRepository interface {
	Create(ctx context.Context, c Competicao) error
	Delete(ctx context.Context, id CompeticaoID) error
	FindByID(ctx context.Context, id CompeticaoID) (Competicao, error)
	List(ctx context.Context) ([]Competicao, error)
}

type ConfrontoRepository interface {
	Create(ctx context.Context, c Confronto) error
	Finalizar(ctx context.Context, id ConfrontoID, vencedor AtletaID, duracao time.Duration, quando time.Time) error
	Delete(ctx context.Context, id ConfrontoID) error
	FindByID(ctx context.Context, id ConfrontoID) (Confronto, error)
	Resumo(ctx context.Context, id ConfrontoID) (ConfrontoResumo, error)
	ListByCompeticao(ctx context.Context, id CompeticaoID) ([]ConfrontoResumo, error)
	// ContarEventos soma ações e shidos gravados no confronto.
	ContarEventos(ctx context.Context, id ConfrontoID) (int64, error)
}

type AcaoRepository interface {
	Registrar(ctx context.Context, acao Acao) error
	ListByConfronto(ctx context.Context, id ConfrontoID) ([]Acao, error)
}

type ShidoRepository interface {
	Registrar(ctx context.Context, shido Shido) error
	ListByConfronto(ctx context.Context, id ConfrontoID) ([]Shido, error)
}

// Contador guarda o placar ao vivo fora do banco relacional.
type Contador interface {
	Incrementar(ctx context.Context, deltas map[string]int64) error
	Definir(ctx context.Context, valores map[string]int64) error
	ObterTodos(ctx context.Context, chaves []string) (map[string]int64, error)
	Remover(ctx context.Context, chaves ...string) error
}

type Clock interface {
	Agora() time.Time
}

type ScoutService interface {
	CadastrarAtleta(ctx context.Context, a Atleta) (Atleta, error)
	EditarAtleta(ctx context.Context, a Atleta) (Atleta, error)
	ExcluirAtleta(ctx context.Context, id AtletaID) error
	ObterAtleta(ctx context.Context, id AtletaID) (Atleta, error)
	ListarAtletas(ctx context.Context, clube Clube) ([]Atleta, error)

	CadastrarCompeticao(ctx context.Context, c Competicao) (Competicao, error)
	ExcluirCompeticao(ctx context.Context, id CompeticaoID) error
	ListarCompeticoes(ctx context.Context) ([]Competicao, error)

	CriarConfronto(ctx context.Context, c Confronto) (Confronto, error)
	ObterConfronto(ctx context.Context, id ConfrontoID) (ConfrontoResumo, error)
	ListarConfrontos(ctx context.Context, competicaoID CompeticaoID) ([]ConfrontoResumo, error)
	RegistrarAcao(ctx context.Context, registro RegistroAcao) (Acao, error)
	RegistrarShido(ctx context.Context, s Shido) (Shido, error)
	FinalizarConfronto(ctx context.Context, id ConfrontoID, vencedor AtletaID, duracao time.Duration) (ConfrontoResumo, error)
	ExcluirConfronto(ctx context.Context, id ConfrontoID) error
	ListarAcoes(ctx context.Context, id ConfrontoID) ([]Acao, error)
	ListarShidos(ctx context.Context, id ConfrontoID) ([]Shido, error)
	Placar(ctx context.Context, id ConfrontoID) ([]PlacarAtleta, error)
}
