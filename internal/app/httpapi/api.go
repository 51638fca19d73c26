// Pacote httpapi expõe o scout em JSON e traduz os erros de domínio em status HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/marcelojr/analise-judo/internal/app/tatame"
	"github.com/marcelojr/analise-judo/internal/domain"
)

// API empacota os handlers HTTP ligados ao serviço de scout e ao logger.
type API struct {
	service  domain.ScoutService
	logger   *slog.Logger
	validate *validator.Validate
}

func New(service domain.ScoutService, logger *slog.Logger) *API {
	v := validator.New()
	// Mensagens de validação usam o nome do campo no JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		nome, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if nome == "-" {
			return ""
		}
		return nome
	})
	return &API{service: service, logger: logger, validate: v}
}

// Routes monta o roteador. O chamador pode pendurar rotas extras (/readyz, /metrics)
// no mux devolvido.
func (a *API) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(a.observar)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.handleHealthz)

	r.Route("/atletas", func(r chi.Router) {
		r.Get("/", a.listarAtletas)
		r.Post("/", a.cadastrarAtleta)
		r.Get("/{id}", a.obterAtleta)
		r.Put("/{id}", a.editarAtleta)
		r.Delete("/{id}", a.excluirAtleta)
	})

	r.Route("/competicoes", func(r chi.Router) {
		r.Get("/", a.listarCompeticoes)
		r.Post("/", a.cadastrarCompeticao)
		r.Delete("/{id}", a.excluirCompeticao)
		r.Get("/{id}/confrontos", a.listarConfrontos)
	})

	r.Route("/confrontos", func(r chi.Router) {
		r.Post("/", a.criarConfronto)
		r.Get("/{id}", a.obterConfronto)
		r.Delete("/{id}", a.excluirConfronto)
		r.Post("/{id}/finalizar", a.finalizarConfronto)
		r.Get("/{id}/acoes", a.listarAcoes)
		r.Post("/{id}/acoes", a.registrarAcao)
		r.Get("/{id}/shidos", a.listarShidos)
		r.Post("/{id}/shidos", a.registrarShido)
		r.Get("/{id}/placar", a.obterPlacar)
	})

	r.Get("/tatame/quadrante", a.classificarQuadrante)
	r.Get("/tatame/direcao", a.classificarDirecao)

	return r
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// === Atletas ===

func (a *API) listarAtletas(w http.ResponseWriter, r *http.Request) {
	atletas, err := a.service.ListarAtletas(r.Context(), domain.Clube(r.URL.Query().Get("clube")))
	if err != nil {
		a.falha(w, r, "erro ao listar atletas", err)
		return
	}
	responderJSON(w, http.StatusOK, mapear(atletas, novoAtletaResponse))
}

func (a *API) cadastrarAtleta(w http.ResponseWriter, r *http.Request) {
	var req atletaRequest
	if !a.decodificar(w, r, &req) {
		return
	}

	atleta, err := a.service.CadastrarAtleta(r.Context(), req.toDomain())
	if err != nil {
		a.falha(w, r, "erro ao cadastrar atleta", err)
		return
	}
	responderJSON(w, http.StatusCreated, novoAtletaResponse(atleta))
}

func (a *API) obterAtleta(w http.ResponseWriter, r *http.Request) {
	atleta, err := a.service.ObterAtleta(r.Context(), domain.AtletaID(chi.URLParam(r, "id")))
	if err != nil {
		a.falha(w, r, "erro ao obter atleta", err)
		return
	}
	responderJSON(w, http.StatusOK, novoAtletaResponse(atleta))
}

func (a *API) editarAtleta(w http.ResponseWriter, r *http.Request) {
	var req atletaRequest
	if !a.decodificar(w, r, &req) {
		return
	}

	atleta := req.toDomain()
	atleta.ID = domain.AtletaID(chi.URLParam(r, "id"))
	editado, err := a.service.EditarAtleta(r.Context(), atleta)
	if err != nil {
		a.falha(w, r, "erro ao editar atleta", err)
		return
	}
	responderJSON(w, http.StatusOK, novoAtletaResponse(editado))
}

func (a *API) excluirAtleta(w http.ResponseWriter, r *http.Request) {
	if err := a.service.ExcluirAtleta(r.Context(), domain.AtletaID(chi.URLParam(r, "id"))); err != nil {
		a.falha(w, r, "erro ao excluir atleta", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// === Competições ===

func (a *API) listarCompeticoes(w http.ResponseWriter, r *http.Request) {
	competicoes, err := a.service.ListarCompeticoes(r.Context())
	if err != nil {
		a.falha(w, r, "erro ao listar competicoes", err)
		return
	}
	responderJSON(w, http.StatusOK, mapear(competicoes, novaCompeticaoResponse))
}

func (a *API) cadastrarCompeticao(w http.ResponseWriter, r *http.Request) {
	var req competicaoRequest
	if !a.decodificar(w, r, &req) {
		return
	}
	data, err := time.Parse(formatoData, req.Data)
	if err != nil {
		a.falha(w, r, "data invalida", fmt.Errorf("%w: data %q", domain.ErrValidacao, req.Data))
		return
	}

	competicao, err := a.service.CadastrarCompeticao(r.Context(), domain.Competicao{
		Nome:   req.Nome,
		Data:   data,
		Classe: domain.Classe(req.Classe),
	})
	if err != nil {
		a.falha(w, r, "erro ao cadastrar competicao", err)
		return
	}
	responderJSON(w, http.StatusCreated, novaCompeticaoResponse(competicao))
}

func (a *API) excluirCompeticao(w http.ResponseWriter, r *http.Request) {
	if err := a.service.ExcluirCompeticao(r.Context(), domain.CompeticaoID(chi.URLParam(r, "id"))); err != nil {
		a.falha(w, r, "erro ao excluir competicao", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listarConfrontos(w http.ResponseWriter, r *http.Request) {
	confrontos, err := a.service.ListarConfrontos(r.Context(), domain.CompeticaoID(chi.URLParam(r, "id")))
	if err != nil {
		a.falha(w, r, "erro ao listar confrontos", err)
		return
	}
	responderJSON(w, http.StatusOK, mapear(confrontos, novoConfrontoResponse))
}

// === Confrontos ===

func (a *API) criarConfronto(w http.ResponseWriter, r *http.Request) {
	var req confrontoRequest
	if !a.decodificar(w, r, &req) {
		return
	}

	confronto, err := a.service.CriarConfronto(r.Context(), domain.Confronto{
		CompeticaoID: domain.CompeticaoID(req.CompeticaoID),
		Atleta1ID:    domain.AtletaID(req.Atleta1ID),
		Atleta2ID:    domain.AtletaID(req.Atleta2ID),
		Categoria:    domain.Categoria(req.Categoria),
	})
	if err != nil {
		a.falha(w, r, "erro ao criar confronto", err)
		return
	}
	responderJSON(w, http.StatusCreated, novoConfrontoResponse(domain.ConfrontoResumo{Confronto: confronto}))
}

func (a *API) obterConfronto(w http.ResponseWriter, r *http.Request) {
	resumo, err := a.service.ObterConfronto(r.Context(), domain.ConfrontoID(chi.URLParam(r, "id")))
	if err != nil {
		a.falha(w, r, "erro ao obter confronto", err)
		return
	}
	responderJSON(w, http.StatusOK, novoConfrontoResponse(resumo))
}

func (a *API) excluirConfronto(w http.ResponseWriter, r *http.Request) {
	if err := a.service.ExcluirConfronto(r.Context(), domain.ConfrontoID(chi.URLParam(r, "id"))); err != nil {
		a.falha(w, r, "erro ao excluir confronto", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) finalizarConfronto(w http.ResponseWriter, r *http.Request) {
	var req finalizarRequest
	if !a.decodificar(w, r, &req) {
		return
	}
	duracao, err := domain.ParseDuracao(req.Duracao)
	if err != nil {
		a.falha(w, r, "duracao invalida", err)
		return
	}

	id := domain.ConfrontoID(chi.URLParam(r, "id"))
	resumo, err := a.service.FinalizarConfronto(r.Context(), id, domain.AtletaID(req.VencedorID), duracao)
	if err != nil {
		a.falha(w, r, "erro ao finalizar confronto", err)
		return
	}
	responderJSON(w, http.StatusOK, novoConfrontoResponse(resumo))
}

func (a *API) listarAcoes(w http.ResponseWriter, r *http.Request) {
	acoes, err := a.service.ListarAcoes(r.Context(), domain.ConfrontoID(chi.URLParam(r, "id")))
	if err != nil {
		a.falha(w, r, "erro ao listar acoes", err)
		return
	}
	responderJSON(w, http.StatusOK, mapear(acoes, novaAcaoResponse))
}

func (a *API) registrarAcao(w http.ResponseWriter, r *http.Request) {
	var req acaoRequest
	if !a.decodificar(w, r, &req) {
		return
	}

	acao, err := a.service.RegistrarAcao(r.Context(), req.toDomain(domain.ConfrontoID(chi.URLParam(r, "id"))))
	if err != nil {
		a.falha(w, r, "erro ao registrar acao", err)
		return
	}
	responderJSON(w, http.StatusCreated, novaAcaoResponse(acao))
}

func (a *API) listarShidos(w http.ResponseWriter, r *http.Request) {
	shidos, err := a.service.ListarShidos(r.Context(), domain.ConfrontoID(chi.URLParam(r, "id")))
	if err != nil {
		a.falha(w, r, "erro ao listar shidos", err)
		return
	}
	responderJSON(w, http.StatusOK, mapear(shidos, novoShidoResponse))
}

func (a *API) registrarShido(w http.ResponseWriter, r *http.Request) {
	var req shidoRequest
	if !a.decodificar(w, r, &req) {
		return
	}

	shido, err := a.service.RegistrarShido(r.Context(), domain.Shido{
		ConfrontoID: domain.ConfrontoID(chi.URLParam(r, "id")),
		AtletaID:    domain.AtletaID(req.AtletaID),
		Tipo:        domain.TipoShido(req.Tipo),
		Tempo:       domain.FaixaTempo(req.Tempo),
	})
	if err != nil {
		a.falha(w, r, "erro ao registrar shido", err)
		return
	}
	responderJSON(w, http.StatusCreated, novoShidoResponse(shido))
}

func (a *API) obterPlacar(w http.ResponseWriter, r *http.Request) {
	placar, err := a.service.Placar(r.Context(), domain.ConfrontoID(chi.URLParam(r, "id")))
	if err != nil {
		a.falha(w, r, "erro ao obter placar", err)
		return
	}
	responderJSON(w, http.StatusOK, mapear(placar, func(p domain.PlacarAtleta) placarResponse {
		return placarResponse{
			AtletaID: string(p.AtletaID),
			Yuko:     p.Yuko,
			WazaAri:  p.WazaAri,
			Ippon:    p.Ippon,
			Shidos:   p.Shidos,
		}
	}))
}

// === Tatame ===

func (a *API) classificarQuadrante(w http.ResponseWriter, r *http.Request) {
	p, err := lerPonto(r)
	if err != nil {
		a.falha(w, r, "coordenada invalida", err)
		return
	}
	q := tatame.Quadrante(p)
	responderJSON(w, http.StatusOK, map[string]any{"quadrante": int(q), "definido": q.Definido()})
}

func (a *API) classificarDirecao(w http.ResponseWriter, r *http.Request) {
	p, err := lerPonto(r)
	if err != nil {
		a.falha(w, r, "coordenada invalida", err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]string{"direcao": string(tatame.DirecaoNewaza(p))})
}

func lerPonto(r *http.Request) (domain.Ponto, error) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		return domain.Ponto{}, fmt.Errorf("%w: x e y devem ser numericos", domain.ErrValidacao)
	}
	return domain.Ponto{X: x, Y: y}, nil
}

// === Infra ===

// decodificar lê o JSON e aplica as tags de validação; em caso de falha já responde 400.
func (a *API) decodificar(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.logger.Warn("payload invalido", "err", err, "request_id", RequestID(r.Context()))
		responderJSON(w, http.StatusBadRequest, map[string]string{"erro": "payload invalido"})
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		a.falha(w, r, "payload rejeitado", fmt.Errorf("%w: %s", domain.ErrValidacao, descreverValidacao(err)))
		return false
	}
	return true
}

func descreverValidacao(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	campos := make([]string, len(ve))
	for i, fe := range ve {
		campos[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	return "campos invalidos: " + strings.Join(campos, ", ")
}

func (a *API) falha(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusDoErro(err)
	attrs := []any{"err", err, "tipo", domain.TipoDoErro(err), "status", status, "request_id", RequestID(r.Context())}
	if status >= http.StatusInternalServerError {
		a.logger.Error(msg, attrs...)
	} else {
		a.logger.Warn(msg, attrs...)
	}
	responderErro(w, status, err)
}

func responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func responderErro(w http.ResponseWriter, status int, err error) {
	responderJSON(w, status, map[string]string{"erro": err.Error()})
}

func statusDoErro(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidacao):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicado), errors.Is(err, domain.ErrTransicaoInvalida):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConexao):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
