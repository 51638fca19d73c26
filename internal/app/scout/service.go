// Pacote scout implementa o ciclo de vida dos confrontos e os cadastros que o alimentam:
// atletas, competições, ações e shidos.
package scout

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelojr/analise-judo/internal/app/tatame"
	"github.com/marcelojr/analise-judo/internal/domain"
	"github.com/marcelojr/analise-judo/internal/platform/ids"
	"github.com/marcelojr/analise-judo/internal/platform/logger"
	"github.com/marcelojr/analise-judo/internal/platform/metrics"
)

// Service concentra as regras do scout e delega persistência aos repositórios.
// O contador é opcional; sem ele o placar é sempre recalculado pelo banco.
type Service struct {
	atletas     domain.AtletaRepository
	competicoes domain.CompeticaoRepository
	confrontos  domain.ConfrontoRepository
	acoes       domain.AcaoRepository
	shidos      domain.ShidoRepository
	contador    domain.Contador
	clock       domain.Clock
	ids         *ids.Generator
}

func NewService(
	atletas domain.AtletaRepository,
	competicoes domain.CompeticaoRepository,
	confrontos domain.ConfrontoRepository,
	acoes domain.AcaoRepository,
	shidos domain.ShidoRepository,
	contador domain.Contador,
	clock domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		atletas:     atletas,
		competicoes: competicoes,
		confrontos:  confrontos,
		acoes:       acoes,
		shidos:      shidos,
		contador:    contador,
		clock:       clock,
		ids:         idsGen,
	}
}

func (s *Service) CadastrarAtleta(ctx context.Context, a domain.Atleta) (domain.Atleta, error) {
	if err := validarAtleta(a); err != nil {
		return domain.Atleta{}, err
	}
	agora := s.clock.Agora()

	a.ID = domain.AtletaID(s.ids.New())
	a.DataNascimento = domain.DataNascimentoDoAno(a.AnoNascimento())
	a.CriadoEm = agora
	a.AtualizadoEm = agora

	if err := s.atletas.Create(ctx, a); err != nil {
		return domain.Atleta{}, err
	}
	return a, nil
}

func (s *Service) EditarAtleta(ctx context.Context, a domain.Atleta) (domain.Atleta, error) {
	if a.ID == "" {
		return domain.Atleta{}, fmt.Errorf("%w: id do atleta obrigatorio", domain.ErrValidacao)
	}
	if err := validarAtleta(a); err != nil {
		return domain.Atleta{}, err
	}

	a.DataNascimento = domain.DataNascimentoDoAno(a.AnoNascimento())
	a.AtualizadoEm = s.clock.Agora()

	if err := s.atletas.Update(ctx, a); err != nil {
		return domain.Atleta{}, err
	}
	return s.atletas.FindByID(ctx, a.ID)
}

// ExcluirAtleta remove o atleta e todos os confrontos de que ele participou.
func (s *Service) ExcluirAtleta(ctx context.Context, id domain.AtletaID) error {
	if err := s.atletas.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("atleta excluido", "atleta", id)
	return nil
}

func (s *Service) ObterAtleta(ctx context.Context, id domain.AtletaID) (domain.Atleta, error) {
	return s.atletas.FindByID(ctx, id)
}

// ListarAtletas devolve todos os atletas quando clube vem vazio.
func (s *Service) ListarAtletas(ctx context.Context, clube domain.Clube) ([]domain.Atleta, error) {
	if clube == "" {
		return s.atletas.List(ctx)
	}
	if !clube.Valido() {
		return nil, fmt.Errorf("%w: clube %q desconhecido", domain.ErrValidacao, clube)
	}
	return s.atletas.ListByClube(ctx, clube)
}

func (s *Service) CadastrarCompeticao(ctx context.Context, c domain.Competicao) (domain.Competicao, error) {
	if err := validarCompeticao(c); err != nil {
		return domain.Competicao{}, err
	}

	c.ID = domain.CompeticaoID(s.ids.New())
	c.Data = time.Date(c.Data.Year(), c.Data.Month(), c.Data.Day(), 0, 0, 0, 0, time.UTC)
	c.CriadoEm = s.clock.Agora()

	if err := s.competicoes.Create(ctx, c); err != nil {
		return domain.Competicao{}, err
	}
	return c, nil
}

func (s *Service) ExcluirCompeticao(ctx context.Context, id domain.CompeticaoID) error {
	return s.competicoes.Delete(ctx, id)
}

func (s *Service) ListarCompeticoes(ctx context.Context) ([]domain.Competicao, error) {
	return s.competicoes.List(ctx)
}

// CriarConfronto abre um confronto sem vencedor e sem duração.
func (s *Service) CriarConfronto(ctx context.Context, c domain.Confronto) (domain.Confronto, error) {
	if err := validarConfronto(c); err != nil {
		return domain.Confronto{}, err
	}

	c.ID = domain.ConfrontoID(s.ids.New())
	c.VencedorID = nil
	c.Duracao = nil
	c.FinalizadoEm = nil
	c.CriadoEm = s.clock.Agora()

	if err := s.confrontos.Create(ctx, c); err != nil {
		return domain.Confronto{}, err
	}
	return c, nil
}

func (s *Service) ObterConfronto(ctx context.Context, id domain.ConfrontoID) (domain.ConfrontoResumo, error) {
	return s.confrontos.Resumo(ctx, id)
}

func (s *Service) ListarConfrontos(ctx context.Context, competicaoID domain.CompeticaoID) ([]domain.ConfrontoResumo, error) {
	return s.confrontos.ListByCompeticao(ctx, competicaoID)
}

// RegistrarAcao classifica as coordenadas clicadas, valida os vocabulários e grava a ação.
// O repositório confere, na mesma transação do insert, que o confronto segue aberto.
func (s *Service) RegistrarAcao(ctx context.Context, registro domain.RegistroAcao) (domain.Acao, error) {
	acao := classificar(registro)
	if err := validarAcao(acao); err != nil {
		return domain.Acao{}, err
	}

	acao.ID = domain.AcaoID(s.ids.New())
	acao.CriadoEm = s.clock.Agora()

	if err := s.acoes.Registrar(ctx, acao); err != nil {
		return domain.Acao{}, err
	}

	metrics.IncAcaoRegistrada(string(acao.EfetividadeGolpe))
	s.atualizarPlacar(ctx, acao.ConfrontoID, acao.Pontuacao()...)
	return acao, nil
}

func (s *Service) RegistrarShido(ctx context.Context, shido domain.Shido) (domain.Shido, error) {
	if err := validarShido(shido); err != nil {
		return domain.Shido{}, err
	}

	shido.ID = domain.ShidoID(s.ids.New())
	shido.CriadoEm = s.clock.Agora()

	if err := s.shidos.Registrar(ctx, shido); err != nil {
		return domain.Shido{}, err
	}

	metrics.IncShidoRegistrado(string(shido.Tipo))
	s.atualizarPlacar(ctx, shido.ConfrontoID, shido.Pontuacao())
	return shido, nil
}

// FinalizarConfronto grava vencedor e duração. Um confronto finalizado não volta a ficar aberto.
func (s *Service) FinalizarConfronto(ctx context.Context, id domain.ConfrontoID, vencedor domain.AtletaID, duracao time.Duration) (domain.ConfrontoResumo, error) {
	if vencedor == "" {
		return domain.ConfrontoResumo{}, fmt.Errorf("%w: vencedor obrigatorio", domain.ErrValidacao)
	}
	if duracao < 0 {
		return domain.ConfrontoResumo{}, fmt.Errorf("%w: duracao negativa", domain.ErrValidacao)
	}

	if err := s.confrontos.Finalizar(ctx, id, vencedor, duracao, s.clock.Agora()); err != nil {
		return domain.ConfrontoResumo{}, err
	}

	metrics.IncConfrontoFinalizado()
	logger.Info("confronto finalizado", "confronto", id, "vencedor", vencedor, "duracao", domain.FormatarDuracao(duracao))
	return s.confrontos.Resumo(ctx, id)
}

// ExcluirConfronto é o único jeito de desfazer um confronto; ações e shidos vão junto.
func (s *Service) ExcluirConfronto(ctx context.Context, id domain.ConfrontoID) error {
	c, err := s.confrontos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.confrontos.Delete(ctx, id); err != nil {
		return err
	}

	if s.contador != nil {
		if err := s.contador.Remover(ctx, chavesDoConfronto(c)...); err != nil {
			logger.Warn("falha ao limpar placar ao vivo", "confronto", id, "err", err)
		}
	}
	return nil
}

func (s *Service) ListarAcoes(ctx context.Context, id domain.ConfrontoID) ([]domain.Acao, error) {
	return s.acoes.ListByConfronto(ctx, id)
}

func (s *Service) ListarShidos(ctx context.Context, id domain.ConfrontoID) ([]domain.Shido, error) {
	return s.shidos.ListByConfronto(ctx, id)
}

// Placar lê os contadores ao vivo quando existem e recorre ao banco se eles falharem.
func (s *Service) Placar(ctx context.Context, id domain.ConfrontoID) ([]domain.PlacarAtleta, error) {
	c, err := s.confrontos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.contador != nil {
		placar, ok, err := s.placarAoVivo(ctx, c)
		switch {
		case err != nil:
			logger.Warn("placar ao vivo indisponivel, recalculando pelo banco", "confronto", id, "err", err)
		case ok:
			return placar, nil
		default:
			logger.Warn("placar ao vivo defasado, recalculando pelo banco", "confronto", id)
		}
	}

	acoes, err := s.acoes.ListByConfronto(ctx, id)
	if err != nil {
		return nil, err
	}
	shidos, err := s.shidos.ListByConfronto(ctx, id)
	if err != nil {
		return nil, err
	}

	placar := domain.CalcularPlacar(c, acoes, shidos)
	if s.contador != nil {
		s.ressemearPlacar(ctx, c, placar, len(acoes)+len(shidos))
	}
	return placar, nil
}

// classificar aplica o classificador do tatame às coordenadas informadas. Sem
// coordenada, vale o que veio na própria ação.
func classificar(registro domain.RegistroAcao) domain.Acao {
	acao := registro.Acao
	if registro.PontoTachiWaza != nil {
		acao.Quadrante = tatame.Quadrante(*registro.PontoTachiWaza)
	}

	if !acao.Newaza {
		acao.AtletaNewazaID = nil
		acao.Direcao = domain.DirecaoIndefinida
		acao.Partida = ""
		acao.EfetividadeNewaza = ""
		return acao
	}

	if registro.PontoNewaza != nil {
		acao.Direcao = tatame.DirecaoNewaza(*registro.PontoNewaza)
	}
	if acao.Direcao == "" {
		acao.Direcao = domain.DirecaoIndefinida
	}
	return acao
}

var _ domain.ScoutService = (*Service)(nil)
