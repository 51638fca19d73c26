package domain

import (
	"time"
)

type (
	AtletaID     string
	CompeticaoID string
	ConfrontoID  string
	AcaoID       string
	ShidoID      string
)

type Atleta struct {
	ID             AtletaID
	Nome           string
	Categoria      Categoria
	DataNascimento time.Time
	Clube          Clube
	CriadoEm       time.Time
	AtualizadoEm   time.Time
}

// DataNascimentoDoAno converte o ano informado no cadastro para 1º de janeiro daquele ano.
func DataNascimentoDoAno(ano int) time.Time {
	return time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (a Atleta) AnoNascimento() int {
	return a.DataNascimento.Year()
}

type Competicao struct {
	ID       CompeticaoID
	Nome     string
	Data     time.Time
	Classe   Classe
	CriadoEm time.Time
}

type Confronto struct {
	ID           ConfrontoID
	CompeticaoID CompeticaoID
	Atleta1ID    AtletaID
	Atleta2ID    AtletaID
	VencedorID   *AtletaID
	Categoria    Categoria
	Duracao      *time.Duration
	CriadoEm     time.Time
	FinalizadoEm *time.Time
}

// ConfrontoResumo é a visão de leitura usada nas listagens: confronto com nomes já resolvidos.
type ConfrontoResumo struct {
	Confronto
	CompeticaoNome string
	Atleta1Nome    string
	Atleta2Nome    string
	VencedorNome   string
}

type Acao struct {
	ID                AcaoID
	ConfrontoID       ConfrontoID
	AtletaID          AtletaID
	Quadrante         Quadrante
	GrupoGolpe        GrupoGolpe
	Tempo             FaixaTempo
	MaoDireita        Pegada
	MaoEsquerda       Pegada
	EfetividadeGolpe  EfetividadeGolpe
	Newaza            bool
	AtletaNewazaID    *AtletaID
	Direcao           DirecaoNewaza
	Partida           OrigemNewaza
	EfetividadeNewaza EfetividadeNewaza
	CriadoEm          time.Time
}

type Shido struct {
	ID          ShidoID
	ConfrontoID ConfrontoID
	AtletaID    AtletaID
	Tipo        TipoShido
	Tempo       FaixaTempo
	CriadoEm    time.Time
}

// Ponto é uma coordenada em pixels sobre um dos diagramas do tatame.
type Ponto struct {
	X float64
	Y float64
}

// RegistroAcao carrega a ação informada pelo usuário junto das coordenadas brutas
// clicadas nos diagramas de tachi-waza e ne-waza.
type RegistroAcao struct {
	Acao           Acao
	PontoTachiWaza *Ponto
	PontoNewaza    *Ponto
}

type PlacarAtleta struct {
	ConfrontoID ConfrontoID
	AtletaID    AtletaID
	Yuko        int64
	WazaAri     int64
	Ippon       int64
	Shidos      int64
}
