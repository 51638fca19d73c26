package httpapi

import (
	"time"

	"github.com/marcelojr/analise-judo/internal/domain"
)

const formatoData = time.DateOnly

type atletaRequest struct {
	Nome          string `json:"nome" validate:"required"`
	Categoria     string `json:"categoria" validate:"required"`
	AnoNascimento int    `json:"ano_nascimento" validate:"required,gt=0"`
	Clube         string `json:"clube" validate:"required"`
}

func (r atletaRequest) toDomain() domain.Atleta {
	return domain.Atleta{
		Nome:           r.Nome,
		Categoria:      domain.Categoria(r.Categoria),
		DataNascimento: domain.DataNascimentoDoAno(r.AnoNascimento),
		Clube:          domain.Clube(r.Clube),
	}
}

type atletaResponse struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	Categoria     string    `json:"categoria"`
	AnoNascimento int       `json:"ano_nascimento"`
	Clube         string    `json:"clube"`
	CriadoEm      time.Time `json:"criado_em"`
	AtualizadoEm  time.Time `json:"atualizado_em"`
}

func novoAtletaResponse(a domain.Atleta) atletaResponse {
	return atletaResponse{
		ID:            string(a.ID),
		Nome:          a.Nome,
		Categoria:     string(a.Categoria),
		AnoNascimento: a.AnoNascimento(),
		Clube:         string(a.Clube),
		CriadoEm:      a.CriadoEm,
		AtualizadoEm:  a.AtualizadoEm,
	}
}

type competicaoRequest struct {
	Nome   string `json:"nome" validate:"required"`
	Data   string `json:"data" validate:"required,datetime=2006-01-02"`
	Classe string `json:"classe" validate:"required"`
}

type competicaoResponse struct {
	ID       string    `json:"id"`
	Nome     string    `json:"nome"`
	Data     string    `json:"data"`
	Classe   string    `json:"classe"`
	CriadoEm time.Time `json:"criado_em"`
}

func novaCompeticaoResponse(c domain.Competicao) competicaoResponse {
	return competicaoResponse{
		ID:       string(c.ID),
		Nome:     c.Nome,
		Data:     c.Data.Format(formatoData),
		Classe:   string(c.Classe),
		CriadoEm: c.CriadoEm,
	}
}

type confrontoRequest struct {
	CompeticaoID string `json:"competicao_id" validate:"required"`
	Atleta1ID    string `json:"atleta1_id" validate:"required"`
	Atleta2ID    string `json:"atleta2_id" validate:"required"`
	Categoria    string `json:"categoria" validate:"required"`
}

type finalizarRequest struct {
	VencedorID string `json:"vencedor_id" validate:"required"`
	Duracao    string `json:"duracao" validate:"required"`
}

type confrontoResponse struct {
	ID             string     `json:"id"`
	CompeticaoID   string     `json:"competicao_id"`
	CompeticaoNome string     `json:"competicao_nome,omitempty"`
	Atleta1ID      string     `json:"atleta1_id"`
	Atleta1Nome    string     `json:"atleta1_nome,omitempty"`
	Atleta2ID      string     `json:"atleta2_id"`
	Atleta2Nome    string     `json:"atleta2_nome,omitempty"`
	Categoria      string     `json:"categoria"`
	Finalizado     bool       `json:"finalizado"`
	VencedorID     *string    `json:"vencedor_id"`
	VencedorNome   string     `json:"vencedor_nome,omitempty"`
	Duracao        *string    `json:"duracao"`
	CriadoEm       time.Time  `json:"criado_em"`
	FinalizadoEm   *time.Time `json:"finalizado_em,omitempty"`
}

func novoConfrontoResponse(r domain.ConfrontoResumo) confrontoResponse {
	resp := confrontoResponse{
		ID:             string(r.ID),
		CompeticaoID:   string(r.CompeticaoID),
		CompeticaoNome: r.CompeticaoNome,
		Atleta1ID:      string(r.Atleta1ID),
		Atleta1Nome:    r.Atleta1Nome,
		Atleta2ID:      string(r.Atleta2ID),
		Atleta2Nome:    r.Atleta2Nome,
		Categoria:      string(r.Categoria),
		Finalizado:     r.Finalizado(),
		VencedorNome:   r.VencedorNome,
		CriadoEm:       r.CriadoEm,
		FinalizadoEm:   r.FinalizadoEm,
	}
	if r.VencedorID != nil {
		v := string(*r.VencedorID)
		resp.VencedorID = &v
	}
	if r.Duracao != nil {
		d := domain.FormatarDuracao(*r.Duracao)
		resp.Duracao = &d
	}
	return resp
}

type pontoRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p *pontoRequest) toDomain() *domain.Ponto {
	if p == nil {
		return nil
	}
	return &domain.Ponto{X: p.X, Y: p.Y}
}

// acaoRequest aceita a zona já resolvida ou as coordenadas brutas clicadas nos diagramas;
// quando há coordenada, ela prevalece.
type acaoRequest struct {
	AtletaID          string        `json:"atleta_id" validate:"required"`
	Tempo             string        `json:"tempo" validate:"required"`
	Quadrante         int           `json:"quadrante" validate:"gte=0,lte=4"`
	GrupoGolpe        string        `json:"grupo_golpe"`
	MaoDireita        string        `json:"mao_direita"`
	MaoEsquerda       string        `json:"mao_esquerda"`
	EfetividadeGolpe  string        `json:"efetividade_golpe"`
	Newaza            bool          `json:"newaza"`
	AtletaNewazaID    string        `json:"atleta_newaza_id"`
	Direcao           string        `json:"direcao"`
	Partida           string        `json:"partida"`
	EfetividadeNewaza string        `json:"efetividade_newaza"`
	PontoTachiWaza    *pontoRequest `json:"ponto_tachi_waza"`
	PontoNewaza       *pontoRequest `json:"ponto_newaza"`
}

func (r acaoRequest) toDomain(confronto domain.ConfrontoID) domain.RegistroAcao {
	acao := domain.Acao{
		ConfrontoID:       confronto,
		AtletaID:          domain.AtletaID(r.AtletaID),
		Quadrante:         domain.Quadrante(r.Quadrante),
		GrupoGolpe:        domain.GrupoGolpe(r.GrupoGolpe),
		Tempo:             domain.FaixaTempo(r.Tempo),
		MaoDireita:        domain.Pegada(r.MaoDireita),
		MaoEsquerda:       domain.Pegada(r.MaoEsquerda),
		EfetividadeGolpe:  domain.EfetividadeGolpe(r.EfetividadeGolpe),
		Newaza:            r.Newaza,
		Direcao:           domain.DirecaoNewaza(r.Direcao),
		Partida:           domain.OrigemNewaza(r.Partida),
		EfetividadeNewaza: domain.EfetividadeNewaza(r.EfetividadeNewaza),
	}
	if r.AtletaNewazaID != "" {
		id := domain.AtletaID(r.AtletaNewazaID)
		acao.AtletaNewazaID = &id
	}
	return domain.RegistroAcao{
		Acao:           acao,
		PontoTachiWaza: r.PontoTachiWaza.toDomain(),
		PontoNewaza:    r.PontoNewaza.toDomain(),
	}
}

type acaoResponse struct {
	ID                string    `json:"id"`
	ConfrontoID       string    `json:"confronto_id"`
	AtletaID          string    `json:"atleta_id"`
	Quadrante         *int      `json:"quadrante"`
	GrupoGolpe        string    `json:"grupo_golpe,omitempty"`
	Tempo             string    `json:"tempo"`
	MaoDireita        string    `json:"mao_direita,omitempty"`
	MaoEsquerda       string    `json:"mao_esquerda,omitempty"`
	EfetividadeGolpe  string    `json:"efetividade_golpe,omitempty"`
	Newaza            bool      `json:"newaza"`
	AtletaNewazaID    *string   `json:"atleta_newaza_id,omitempty"`
	Direcao           string    `json:"direcao"`
	Partida           string    `json:"partida,omitempty"`
	EfetividadeNewaza string    `json:"efetividade_newaza,omitempty"`
	CriadoEm          time.Time `json:"criado_em"`
}

func novaAcaoResponse(a domain.Acao) acaoResponse {
	resp := acaoResponse{
		ID:                string(a.ID),
		ConfrontoID:       string(a.ConfrontoID),
		AtletaID:          string(a.AtletaID),
		GrupoGolpe:        string(a.GrupoGolpe),
		Tempo:             string(a.Tempo),
		MaoDireita:        string(a.MaoDireita),
		MaoEsquerda:       string(a.MaoEsquerda),
		EfetividadeGolpe:  string(a.EfetividadeGolpe),
		Newaza:            a.Newaza,
		Direcao:           string(a.Direcao),
		Partida:           string(a.Partida),
		EfetividadeNewaza: string(a.EfetividadeNewaza),
		CriadoEm:          a.CriadoEm,
	}
	if a.Quadrante.Definido() {
		q := int(a.Quadrante)
		resp.Quadrante = &q
	}
	if a.AtletaNewazaID != nil {
		id := string(*a.AtletaNewazaID)
		resp.AtletaNewazaID = &id
	}
	return resp
}

type shidoRequest struct {
	AtletaID string `json:"atleta_id" validate:"required"`
	Tipo     string `json:"tipo" validate:"required"`
	Tempo    string `json:"tempo" validate:"required"`
}

type shidoResponse struct {
	ID          string    `json:"id"`
	ConfrontoID string    `json:"confronto_id"`
	AtletaID    string    `json:"atleta_id"`
	Tipo        string    `json:"tipo"`
	Tempo       string    `json:"tempo"`
	CriadoEm    time.Time `json:"criado_em"`
}

func novoShidoResponse(s domain.Shido) shidoResponse {
	return shidoResponse{
		ID:          string(s.ID),
		ConfrontoID: string(s.ConfrontoID),
		AtletaID:    string(s.AtletaID),
		Tipo:        string(s.Tipo),
		Tempo:       string(s.Tempo),
		CriadoEm:    s.CriadoEm,
	}
}

type placarResponse struct {
	AtletaID string `json:"atleta_id"`
	Yuko     int64  `json:"yuko"`
	WazaAri  int64  `json:"waza_ari"`
	Ippon    int64  `json:"ippon"`
	Shidos   int64  `json:"shidos"`
}

func mapear[T, R any](itens []T, f func(T) R) []R {
	result := make([]R, len(itens))
	for i, item := range itens {
		result[i] = f(item)
	}
	return result
}
