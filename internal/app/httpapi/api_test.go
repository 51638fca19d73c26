package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marcelojr/analise-judo/internal/domain"
)

// MockScoutService implementa a interface do serviço de scout para testes
type MockScoutService struct {
	mock.Mock
}

func (m *MockScoutService) CadastrarAtleta(ctx context.Context, a domain.Atleta) (domain.Atleta, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Atleta), args.Error(1)
}

func (m *MockScoutService) EditarAtleta(ctx context.Context, a domain.Atleta) (domain.Atleta, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Atleta), args.Error(1)
}

func (m *MockScoutService) ExcluirAtleta(ctx context.Context, id domain.AtletaID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScoutService) ObterAtleta(ctx context.Context, id domain.AtletaID) (domain.Atleta, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Atleta), args.Error(1)
}

func (m *MockScoutService) ListarAtletas(ctx context.Context, clube domain.Clube) ([]domain.Atleta, error) {
	args := m.Called(ctx, clube)
	return args.Get(0).([]domain.Atleta), args.Error(1)
}

func (m *MockScoutService) CadastrarCompeticao(ctx context.Context, c domain.Competicao) (domain.Competicao, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Competicao), args.Error(1)
}

func (m *MockScoutService) ExcluirCompeticao(ctx context.Context, id domain.CompeticaoID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScoutService) ListarCompeticoes(ctx context.Context) ([]domain.Competicao, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Competicao), args.Error(1)
}

func (m *MockScoutService) CriarConfronto(ctx context.Context, c domain.Confronto) (domain.Confronto, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Confronto), args.Error(1)
}

func (m *MockScoutService) ObterConfronto(ctx context.Context, id domain.ConfrontoID) (domain.ConfrontoResumo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ConfrontoResumo), args.Error(1)
}

func (m *MockScoutService) ListarConfrontos(ctx context.Context, id domain.CompeticaoID) ([]domain.ConfrontoResumo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.ConfrontoResumo), args.Error(1)
}

func (m *MockScoutService) RegistrarAcao(ctx context.Context, registro domain.RegistroAcao) (domain.Acao, error) {
	args := m.Called(ctx, registro)
	return args.Get(0).(domain.Acao), args.Error(1)
}

func (m *MockScoutService) RegistrarShido(ctx context.Context, s domain.Shido) (domain.Shido, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Shido), args.Error(1)
}

func (m *MockScoutService) FinalizarConfronto(ctx context.Context, id domain.ConfrontoID, vencedor domain.AtletaID, duracao time.Duration) (domain.ConfrontoResumo, error) {
	args := m.Called(ctx, id, vencedor, duracao)
	return args.Get(0).(domain.ConfrontoResumo), args.Error(1)
}

func (m *MockScoutService) ExcluirConfronto(ctx context.Context, id domain.ConfrontoID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScoutService) ListarAcoes(ctx context.Context, id domain.ConfrontoID) ([]domain.Acao, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Acao), args.Error(1)
}

func (m *MockScoutService) ListarShidos(ctx context.Context, id domain.ConfrontoID) ([]domain.Shido, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Shido), args.Error(1)
}

func (m *MockScoutService) Placar(ctx context.Context, id domain.ConfrontoID) ([]domain.PlacarAtleta, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.PlacarAtleta), args.Error(1)
}

// setupAPI cria uma instância da API com serviço mockado para testes
func setupAPI(t *testing.T) (http.Handler, *MockScoutService) {
	mockService := new(MockScoutService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{}))
	api := New(mockService, logger)

	t.Cleanup(func() {
		mockService.AssertExpectations(t)
	})

	return api.Routes(), mockService
}

func executar(h http.Handler, metodo, alvo, corpo string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(metodo, alvo, strings.NewReader(corpo))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodificarErro(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Contains(t, response, "erro")
	return response["erro"]
}

// === TESTES GET /healthz ===

func TestHandleHealthz_QuandoSolicitado_DeveRetornar200OK(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "GET", "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRequestID_QuandoClienteNaoEnvia_DeveGerarUUID(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "GET", "/healthz", "")

	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRequestID_QuandoClienteEnviaUUID_DeveReaproveitar(t *testing.T) {
	h, _ := setupAPI(t)
	id := "2f1c9a52-6a53-4e63-9a53-2a1f7f0c9d11"

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(HeaderRequestID))
}

// === TESTES /atletas ===

func TestCadastrarAtleta_QuandoPayloadValido_DeveRetornar201(t *testing.T) {
	h, mockService := setupAPI(t)

	payload := `{"nome":"Ana Silva","categoria":"-57","ano_nascimento":2001,"clube":"Minas"}`
	mockService.On("CadastrarAtleta", mock.Anything, mock.MatchedBy(func(a domain.Atleta) bool {
		return a.Nome == "Ana Silva" && a.AnoNascimento() == 2001 && a.Clube == domain.ClubeMinas
	})).Return(domain.Atleta{
		ID:             "01HATLETA",
		Nome:           "Ana Silva",
		Categoria:      "-57",
		DataNascimento: domain.DataNascimentoDoAno(2001),
		Clube:          domain.ClubeMinas,
	}, nil)

	w := executar(h, "POST", "/atletas", payload)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response atletaResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "01HATLETA", response.ID)
	assert.Equal(t, 2001, response.AnoNascimento)
}

func TestCadastrarAtleta_QuandoPayloadMalformado_DeveRetornar400(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "POST", "/atletas", `{"nome":invalido}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "payload invalido", decodificarErro(t, w))
}

func TestCadastrarAtleta_QuandoFaltamCampos_DeveRetornar400ComCampos(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "POST", "/atletas", `{"nome":"Ana"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := decodificarErro(t, w)
	assert.Contains(t, msg, "categoria")
	assert.Contains(t, msg, "ano_nascimento")
	assert.Contains(t, msg, "clube")
}

func TestCadastrarAtleta_QuandoDuplicado_DeveRetornar409(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("CadastrarAtleta", mock.Anything, mock.Anything).
		Return(domain.Atleta{}, fmt.Errorf("%w: atleta", domain.ErrDuplicado))

	w := executar(h, "POST", "/atletas", `{"nome":"Ana","categoria":"-57","ano_nascimento":2001,"clube":"Minas"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	decodificarErro(t, w)
}

func TestListarAtletas_QuandoFiltraPorClube_DeveRepassarFiltro(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ListarAtletas", mock.Anything, domain.ClubeMinas).
		Return([]domain.Atleta{{ID: "a1", Nome: "Ana"}, {ID: "a2", Nome: "Bia"}}, nil)

	w := executar(h, "GET", "/atletas?clube=Minas", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response []atletaResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Len(t, response, 2)
	assert.Equal(t, "Bia", response[1].Nome)
}

func TestListarAtletas_QuandoNaoHaAtletas_DeveRetornarListaVazia(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ListarAtletas", mock.Anything, domain.Clube("")).Return([]domain.Atleta(nil), nil)

	w := executar(h, "GET", "/atletas", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestObterAtleta_QuandoNaoExiste_DeveRetornar404(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ObterAtleta", mock.Anything, domain.AtletaID("nada")).
		Return(domain.Atleta{}, domain.ErrNaoEncontrado)

	w := executar(h, "GET", "/atletas/nada", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	decodificarErro(t, w)
}

func TestEditarAtleta_QuandoValido_DeveUsarIDDaRota(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("EditarAtleta", mock.Anything, mock.MatchedBy(func(a domain.Atleta) bool {
		return a.ID == "a1" && a.Nome == "Ana Souza"
	})).Return(domain.Atleta{ID: "a1", Nome: "Ana Souza"}, nil)

	w := executar(h, "PUT", "/atletas/a1", `{"nome":"Ana Souza","categoria":"-57","ano_nascimento":2001,"clube":"Minas"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExcluirAtleta_QuandoExiste_DeveRetornar204(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ExcluirAtleta", mock.Anything, domain.AtletaID("a1")).Return(nil)

	w := executar(h, "DELETE", "/atletas/a1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

// === TESTES /competicoes ===

func TestCadastrarCompeticao_QuandoDataValida_DeveConverter(t *testing.T) {
	h, mockService := setupAPI(t)

	data := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mockService.On("CadastrarCompeticao", mock.Anything, mock.MatchedBy(func(c domain.Competicao) bool {
		return c.Nome == "Campeonato X" && c.Data.Equal(data) && c.Classe == domain.ClasseSenior
	})).Return(domain.Competicao{ID: "comp", Nome: "Campeonato X", Data: data, Classe: domain.ClasseSenior}, nil)

	w := executar(h, "POST", "/competicoes", `{"nome":"Campeonato X","data":"2024-03-10","classe":"Sênior"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response competicaoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "2024-03-10", response.Data)
}

func TestCadastrarCompeticao_QuandoDataMalformada_DeveRetornar400(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "POST", "/competicoes", `{"nome":"Campeonato X","data":"10/03/2024","classe":"Sênior"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodificarErro(t, w), "data")
}

func TestListarConfrontos_QuandoCompeticaoNaoExiste_DeveRetornar404(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ListarConfrontos", mock.Anything, domain.CompeticaoID("nada")).
		Return([]domain.ConfrontoResumo(nil), domain.ErrNaoEncontrado)

	w := executar(h, "GET", "/competicoes/nada/confrontos", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExcluirCompeticao_QuandoBancoIndisponivel_DeveRetornar503(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ExcluirCompeticao", mock.Anything, domain.CompeticaoID("comp")).Return(domain.ErrConexao)

	w := executar(h, "DELETE", "/competicoes/comp", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// === TESTES /confrontos ===

func TestCriarConfronto_QuandoValido_DeveRetornarAberto(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("CriarConfronto", mock.Anything, domain.Confronto{
		CompeticaoID: "comp", Atleta1ID: "ana", Atleta2ID: "bia", Categoria: "-57",
	}).Return(domain.Confronto{ID: "c1", CompeticaoID: "comp", Atleta1ID: "ana", Atleta2ID: "bia", Categoria: "-57"}, nil)

	w := executar(h, "POST", "/confrontos", `{"competicao_id":"comp","atleta1_id":"ana","atleta2_id":"bia","categoria":"-57"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response confrontoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Finalizado)
	assert.Nil(t, response.VencedorID)
	assert.Nil(t, response.Duracao)
}

func TestFinalizarConfronto_QuandoValido_DeveFormatarDuracao(t *testing.T) {
	h, mockService := setupAPI(t)

	vencedor := domain.AtletaID("ana")
	duracao := 3*time.Minute + 12*time.Second
	mockService.On("FinalizarConfronto", mock.Anything, domain.ConfrontoID("c1"), vencedor, duracao).
		Return(domain.ConfrontoResumo{
			Confronto:    domain.Confronto{ID: "c1", Atleta1ID: "ana", Atleta2ID: "bia", VencedorID: &vencedor, Duracao: &duracao},
			VencedorNome: "Ana Silva",
		}, nil)

	w := executar(h, "POST", "/confrontos/c1/finalizar", `{"vencedor_id":"ana","duracao":"00:03:12"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var response confrontoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Finalizado)
	require.NotNil(t, response.Duracao)
	assert.Equal(t, "00:03:12", *response.Duracao)
	assert.Equal(t, "Ana Silva", response.VencedorNome)
}

func TestFinalizarConfronto_QuandoDuracaoInvalida_DeveRetornar400SemChamarServico(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "POST", "/confrontos/c1/finalizar", `{"vencedor_id":"ana","duracao":"três minutos"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinalizarConfronto_QuandoJaFinalizado_DeveRetornar409(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("FinalizarConfronto", mock.Anything, domain.ConfrontoID("c1"), domain.AtletaID("bia"), time.Minute).
		Return(domain.ConfrontoResumo{}, domain.ErrTransicaoInvalida)

	w := executar(h, "POST", "/confrontos/c1/finalizar", `{"vencedor_id":"bia","duracao":"1:00"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegistrarAcao_QuandoEnviaCoordenada_DeveRepassarPonto(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("RegistrarAcao", mock.Anything, mock.MatchedBy(func(r domain.RegistroAcao) bool {
		return r.Acao.ConfrontoID == "c1" && r.PontoTachiWaza != nil &&
			r.PontoTachiWaza.X == 200 && r.PontoTachiWaza.Y == 40 && r.PontoNewaza == nil
	})).Return(domain.Acao{ID: "ac1", ConfrontoID: "c1", AtletaID: "ana", Quadrante: domain.QuadranteSuperiorDir,
		Tempo: domain.FaixaMinuto1, Direcao: domain.DirecaoIndefinida}, nil)

	payload := `{"atleta_id":"ana","tempo":"Minuto 1","efetividade_golpe":"Waza-Ari","ponto_tachi_waza":{"x":200,"y":40}}`
	w := executar(h, "POST", "/confrontos/c1/acoes", payload)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response acaoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotNil(t, response.Quadrante)
	assert.Equal(t, 2, *response.Quadrante)
}

func TestRegistrarAcao_QuandoQuadranteForaDoIntervalo_DeveRetornar400(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "POST", "/confrontos/c1/acoes", `{"atleta_id":"ana","tempo":"Minuto 1","quadrante":7}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodificarErro(t, w), "quadrante")
}

func TestRegistrarAcao_QuandoConfrontoFinalizado_DeveRetornar409(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("RegistrarAcao", mock.Anything, mock.Anything).Return(domain.Acao{}, domain.ErrTransicaoInvalida)

	w := executar(h, "POST", "/confrontos/c1/acoes", `{"atleta_id":"ana","tempo":"Minuto 1"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListarAcoes_QuandoQuadranteDesconhecido_DeveSerializarNulo(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ListarAcoes", mock.Anything, domain.ConfrontoID("c1")).
		Return([]domain.Acao{{ID: "ac1", ConfrontoID: "c1", AtletaID: "ana", Direcao: domain.DirecaoIndefinida}}, nil)

	w := executar(h, "GET", "/confrontos/c1/acoes", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Nil(t, response[0]["quadrante"])
	assert.Equal(t, "Não definida", response[0]["direcao"])
}

func TestRegistrarShido_QuandoValido_DeveRetornar201(t *testing.T) {
	h, mockService := setupAPI(t)

	esperado := domain.Shido{ConfrontoID: "c1", AtletaID: "bia", Tipo: "Pegar na Perna", Tempo: domain.FaixaMinuto2}
	mockService.On("RegistrarShido", mock.Anything, esperado).Return(domain.Shido{
		ID: "s1", ConfrontoID: "c1", AtletaID: "bia", Tipo: "Pegar na Perna", Tempo: domain.FaixaMinuto2,
	}, nil)

	w := executar(h, "POST", "/confrontos/c1/shidos", `{"atleta_id":"bia","tipo":"Pegar na Perna","tempo":"Minuto 2"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestObterPlacar_QuandoExiste_DeveRetornarUmaLinhaPorAtleta(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("Placar", mock.Anything, domain.ConfrontoID("c1")).Return([]domain.PlacarAtleta{
		{ConfrontoID: "c1", AtletaID: "ana", WazaAri: 2, Shidos: 1},
		{ConfrontoID: "c1", AtletaID: "bia", Yuko: 1},
	}, nil)

	w := executar(h, "GET", "/confrontos/c1/placar", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response []placarResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response, 2)
	assert.Equal(t, int64(2), response[0].WazaAri)
	assert.Equal(t, int64(1), response[1].Yuko)
}

func TestExcluirConfronto_QuandoFalhaInesperada_DeveRetornar500(t *testing.T) {
	h, mockService := setupAPI(t)

	mockService.On("ExcluirConfronto", mock.Anything, domain.ConfrontoID("c1")).Return(assert.AnError)

	w := executar(h, "DELETE", "/confrontos/c1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// === TESTES /tatame ===

func TestClassificarQuadrante_QuandoDentroDoTatame_DeveRetornarZona(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "GET", "/tatame/quadrante?x=200&y=40", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"quadrante":2,"definido":true}`, w.Body.String())
}

func TestClassificarQuadrante_QuandoCoordenadaNaoNumerica_DeveRetornar400(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "GET", "/tatame/quadrante?x=abc&y=40", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassificarDirecao_QuandoNaZonaDET_DeveRetornarDET(t *testing.T) {
	h, _ := setupAPI(t)

	w := executar(h, "GET", "/tatame/direcao?x=20&y=230", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"direcao":"DET"}`, w.Body.String())
}

func TestStatusDoErro(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrValidacao), http.StatusBadRequest},
		{domain.ErrNaoEncontrado, http.StatusNotFound},
		{domain.ErrDuplicado, http.StatusConflict},
		{domain.ErrTransicaoInvalida, http.StatusConflict},
		{domain.ErrConexao, http.StatusServiceUnavailable},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusDoErro(tt.err), tt.err.Error())
	}
}
