package scout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/marcelojr/analise-judo/internal/domain"
	"github.com/marcelojr/analise-judo/internal/platform/ids"
)

type serviceDependencies struct {
	atletaRepo     *inMemoryAtletaRepo
	competicaoRepo *inMemoryCompeticaoRepo
	confrontoRepo  *inMemoryConfrontoRepo
	acaoRepo       *inMemoryAcaoRepo
	shidoRepo      *inMemoryShidoRepo
	contador       *inMemoryContador
	clock          *staticClock
	idGen          *ids.Generator
	baseTime       time.Time
}

func newServiceDeps() serviceDependencies {
	base := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	atletas := newInMemoryAtletaRepo()
	competicoes := newInMemoryCompeticaoRepo()
	confrontos := newInMemoryConfrontoRepo(atletas, competicoes)

	confrontos.acoes = &inMemoryAcaoRepo{confrontos: confrontos}
	confrontos.shidos = &inMemoryShidoRepo{confrontos: confrontos}

	return serviceDependencies{
		atletaRepo:     atletas,
		competicaoRepo: competicoes,
		confrontoRepo:  confrontos,
		acaoRepo:       confrontos.acoes,
		shidoRepo:      confrontos.shidos,
		contador:       newInMemoryContador(),
		clock:          &staticClock{now: base},
		idGen:          ids.NewGenerator(),
		baseTime:       base,
	}
}

func (d serviceDependencies) service() *Service {
	return NewService(
		d.atletaRepo,
		d.competicaoRepo,
		d.confrontoRepo,
		d.acaoRepo,
		d.shidoRepo,
		d.contador,
		d.clock,
		d.idGen,
	)
}

type staticClock struct {
	now time.Time
}

func (s *staticClock) Agora() time.Time {
	return s.now
}

type inMemoryAtletaRepo struct {
	mu   sync.Mutex
	data map[domain.AtletaID]domain.Atleta
}

func newInMemoryAtletaRepo() *inMemoryAtletaRepo {
	return &inMemoryAtletaRepo{data: make(map[domain.AtletaID]domain.Atleta)}
}

func (r *inMemoryAtletaRepo) duplicado(a domain.Atleta) bool {
	for id, outro := range r.data {
		if id != a.ID && outro.Nome == a.Nome && outro.DataNascimento.Equal(a.DataNascimento) && outro.Clube == a.Clube {
			return true
		}
	}
	return false
}

func (r *inMemoryAtletaRepo) Create(_ context.Context, a domain.Atleta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.duplicado(a) {
		return domain.ErrDuplicado
	}
	r.data[a.ID] = a
	return nil
}

func (r *inMemoryAtletaRepo) Update(_ context.Context, a domain.Atleta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	atual, ok := r.data[a.ID]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if r.duplicado(a) {
		return domain.ErrDuplicado
	}
	a.CriadoEm = atual.CriadoEm
	r.data[a.ID] = a
	return nil
}

func (r *inMemoryAtletaRepo) Delete(_ context.Context, id domain.AtletaID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryAtletaRepo) FindByID(_ context.Context, id domain.AtletaID) (domain.Atleta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.data[id]
	if !ok {
		return domain.Atleta{}, domain.ErrNaoEncontrado
	}
	return a, nil
}

func (r *inMemoryAtletaRepo) List(ctx context.Context) ([]domain.Atleta, error) {
	return r.ListByClube(ctx, "")
}

func (r *inMemoryAtletaRepo) ListByClube(_ context.Context, clube domain.Clube) ([]domain.Atleta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Atleta
	for _, a := range r.data {
		if clube == "" || a.Clube == clube {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nome < result[j].Nome })
	return result, nil
}

type inMemoryCompeticaoRepo struct {
	mu   sync.Mutex
	data map[domain.CompeticaoID]domain.Competicao
}

func newInMemoryCompeticaoRepo() *inMemoryCompeticaoRepo {
	return &inMemoryCompeticaoRepo{data: make(map[domain.CompeticaoID]domain.Competicao)}
}

func (r *inMemoryCompeticaoRepo) Create(_ context.Context, c domain.Competicao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, outra := range r.data {
		if outra.Nome == c.Nome && outra.Data.Equal(c.Data) {
			return domain.ErrDuplicado
		}
	}
	r.data[c.ID] = c
	return nil
}

func (r *inMemoryCompeticaoRepo) Delete(_ context.Context, id domain.CompeticaoID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryCompeticaoRepo) FindByID(_ context.Context, id domain.CompeticaoID) (domain.Competicao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return domain.Competicao{}, domain.ErrNaoEncontrado
	}
	return c, nil
}

func (r *inMemoryCompeticaoRepo) List(_ context.Context) ([]domain.Competicao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Competicao
	for _, c := range r.data {
		result = append(result, c)
	}
	return result, nil
}

// inMemoryConfrontoRepo reproduz as checagens que o repositório GORM faz na transação.
type inMemoryConfrontoRepo struct {
	mu          sync.Mutex
	data        map[domain.ConfrontoID]domain.Confronto
	ordem       []domain.ConfrontoID
	atletas     *inMemoryAtletaRepo
	competicoes *inMemoryCompeticaoRepo
	acoes       *inMemoryAcaoRepo
	shidos      *inMemoryShidoRepo
}

func newInMemoryConfrontoRepo(atletas *inMemoryAtletaRepo, competicoes *inMemoryCompeticaoRepo) *inMemoryConfrontoRepo {
	return &inMemoryConfrontoRepo{
		data:        make(map[domain.ConfrontoID]domain.Confronto),
		atletas:     atletas,
		competicoes: competicoes,
	}
}

func (r *inMemoryConfrontoRepo) Create(ctx context.Context, c domain.Confronto) error {
	if _, err := r.competicoes.FindByID(ctx, c.CompeticaoID); err != nil {
		return err
	}
	for _, id := range []domain.AtletaID{c.Atleta1ID, c.Atleta2ID} {
		if _, err := r.atletas.FindByID(ctx, id); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[c.ID] = c
	r.ordem = append(r.ordem, c.ID)
	return nil
}

func (r *inMemoryConfrontoRepo) Finalizar(_ context.Context, id domain.ConfrontoID, vencedor domain.AtletaID, duracao time.Duration, quando time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if err := c.Finalizar(vencedor, duracao, quando); err != nil {
		return err
	}
	r.data[id] = c
	return nil
}

func (r *inMemoryConfrontoRepo) Delete(_ context.Context, id domain.ConfrontoID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryConfrontoRepo) ContarEventos(_ context.Context, id domain.ConfrontoID) (int64, error) {
	return r.acoes.contar(id) + r.shidos.contar(id), nil
}

func (r *inMemoryConfrontoRepo) FindByID(_ context.Context, id domain.ConfrontoID) (domain.Confronto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return domain.Confronto{}, fmt.Errorf("%w: confronto %s", domain.ErrNaoEncontrado, id)
	}
	return c, nil
}

func (r *inMemoryConfrontoRepo) Resumo(ctx context.Context, id domain.ConfrontoID) (domain.ConfrontoResumo, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.ConfrontoResumo{}, err
	}
	return r.resumir(ctx, c), nil
}

func (r *inMemoryConfrontoRepo) resumir(ctx context.Context, c domain.Confronto) domain.ConfrontoResumo {
	comp, _ := r.competicoes.FindByID(ctx, c.CompeticaoID)
	a1, _ := r.atletas.FindByID(ctx, c.Atleta1ID)
	a2, _ := r.atletas.FindByID(ctx, c.Atleta2ID)
	resumo := domain.ConfrontoResumo{
		Confronto:      c,
		CompeticaoNome: comp.Nome,
		Atleta1Nome:    a1.Nome,
		Atleta2Nome:    a2.Nome,
	}
	if c.VencedorID != nil {
		v, _ := r.atletas.FindByID(ctx, *c.VencedorID)
		resumo.VencedorNome = v.Nome
	}
	return resumo
}

func (r *inMemoryConfrontoRepo) ListByCompeticao(ctx context.Context, id domain.CompeticaoID) ([]domain.ConfrontoResumo, error) {
	if _, err := r.competicoes.FindByID(ctx, id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	var selecionados []domain.Confronto
	for _, cid := range r.ordem {
		if c, ok := r.data[cid]; ok && c.CompeticaoID == id {
			selecionados = append(selecionados, c)
		}
	}
	r.mu.Unlock()

	result := make([]domain.ConfrontoResumo, len(selecionados))
	for i, c := range selecionados {
		result[i] = r.resumir(ctx, c)
	}
	return result, nil
}

type inMemoryAcaoRepo struct {
	mu         sync.Mutex
	lista      []domain.Acao
	confrontos *inMemoryConfrontoRepo
}

func (r *inMemoryAcaoRepo) Registrar(ctx context.Context, acao domain.Acao) error {
	c, err := r.confrontos.FindByID(ctx, acao.ConfrontoID)
	if err != nil {
		return err
	}
	if err := c.PodeRegistrar(acao.AtletaID); err != nil {
		return err
	}
	if acao.Newaza && acao.AtletaNewazaID != nil && !c.Participa(*acao.AtletaNewazaID) {
		return domain.ErrTransicaoInvalida
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lista = append(r.lista, acao)
	return nil
}

func (r *inMemoryAcaoRepo) ListByConfronto(ctx context.Context, id domain.ConfrontoID) ([]domain.Acao, error) {
	if _, err := r.confrontos.FindByID(ctx, id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Acao
	for _, a := range r.lista {
		if a.ConfrontoID == id {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *inMemoryAcaoRepo) contar(id domain.ConfrontoID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, a := range r.lista {
		if a.ConfrontoID == id {
			total++
		}
	}
	return total
}

type inMemoryShidoRepo struct {
	mu         sync.Mutex
	lista      []domain.Shido
	confrontos *inMemoryConfrontoRepo
}

func (r *inMemoryShidoRepo) Registrar(ctx context.Context, s domain.Shido) error {
	c, err := r.confrontos.FindByID(ctx, s.ConfrontoID)
	if err != nil {
		return err
	}
	if err := c.PodeRegistrar(s.AtletaID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lista = append(r.lista, s)
	return nil
}

func (r *inMemoryShidoRepo) ListByConfronto(ctx context.Context, id domain.ConfrontoID) ([]domain.Shido, error) {
	if _, err := r.confrontos.FindByID(ctx, id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Shido
	for _, s := range r.lista {
		if s.ConfrontoID == id {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *inMemoryShidoRepo) contar(id domain.ConfrontoID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, s := range r.lista {
		if s.ConfrontoID == id {
			total++
		}
	}
	return total
}

var errContadorFora = errors.New("contador fora do ar")

type inMemoryContador struct {
	mu      sync.Mutex
	valores map[string]int64
	falhar  bool
}

func newInMemoryContador() *inMemoryContador {
	return &inMemoryContador{valores: make(map[string]int64)}
}

func (c *inMemoryContador) Incrementar(_ context.Context, deltas map[string]int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.falhar {
		return errContadorFora
	}
	for chave, delta := range deltas {
		c.valores[chave] += delta
	}
	return nil
}

func (c *inMemoryContador) ObterTodos(_ context.Context, chaves []string) (map[string]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.falhar {
		return nil, errContadorFora
	}
	result := make(map[string]int64)
	for _, chave := range chaves {
		result[chave] = c.valores[chave]
	}
	return result, nil
}

func (c *inMemoryContador) Remover(_ context.Context, chaves ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.falhar {
		return errContadorFora
	}
	for _, chave := range chaves {
		delete(c.valores, chave)
	}
	return nil
}

func (c *inMemoryContador) Definir(_ context.Context, valores map[string]int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.falhar {
		return errContadorFora
	}
	for chave, valor := range valores {
		c.valores[chave] = valor
	}
	return nil
}

func (c *inMemoryContador) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.valores)
}

func (c *inMemoryContador) Falhar(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.falhar = v
}
