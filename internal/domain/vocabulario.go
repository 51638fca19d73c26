package domain

import (
	"slices"
	"time"
)

// Categoria é a categoria de peso do atleta e do confronto.
type Categoria string

var Categorias = []Categoria{
	"-48", "-52", "-57", "-60", "-63", "-66", "-70",
	"-73", "-78", "-81", "-90", "-100", "+78", "+100",
}

func (c Categoria) Valido() bool { return slices.Contains(Categorias, c) }

type Clube string

const (
	ClubeMinas         Clube = "Minas"
	ClubeOutros        Clube = "Outros"
	ClubeInternacional Clube = "Internacional"
)

var Clubes = []Clube{ClubeMinas, ClubeOutros, ClubeInternacional}

func (c Clube) Valido() bool { return slices.Contains(Clubes, c) }

// Classe identifica o tipo de competição.
type Classe string

const (
	ClasseCadete Classe = "Cadete"
	ClasseJunior Classe = "Junior"
	ClasseSenior Classe = "Sênior"
	ClasseTreino Classe = "Treino"
)

var Classes = []Classe{ClasseCadete, ClasseJunior, ClasseSenior, ClasseTreino}

func (c Classe) Valido() bool { return slices.Contains(Classes, c) }

type GrupoGolpe string

const (
	GrupoTeWaza         GrupoGolpe = "Te-Waza"
	GrupoAshiWaza       GrupoGolpe = "Ashi-Waza"
	GrupoKoshiWaza      GrupoGolpe = "Koshi-Waza"
	GrupoSutemiWaza     GrupoGolpe = "Sutemi-Waza"
	GrupoYokoSutemiWaza GrupoGolpe = "Yoko-Sutemi-Waza"
	GrupoKaeshiWaza     GrupoGolpe = "Kaeshi-Waza"
	GrupoTranco         GrupoGolpe = "Tranco"
)

var GruposGolpe = []GrupoGolpe{
	GrupoTeWaza, GrupoAshiWaza, GrupoKoshiWaza, GrupoSutemiWaza,
	GrupoYokoSutemiWaza, GrupoKaeshiWaza, GrupoTranco,
}

func (g GrupoGolpe) Valido() bool { return slices.Contains(GruposGolpe, g) }

// Pegada descreve a empunhadura de cada mão no kumi-kata.
type Pegada string

var Pegadas = []Pegada{
	"Uma Mão (Gola)", "Gola", "Gola Cruzada", "Gola Alta", "Patolada",
	"Patolada Cruzada", "Arm Drag", "Uma Mão (Manga)", "Manga", "Manga Cruzada", "Cava",
}

func (p Pegada) Valido() bool { return slices.Contains(Pegadas, p) }

type EfetividadeGolpe string

const (
	EfetividadeYuko        EfetividadeGolpe = "Yuko"
	EfetividadeWazaAri     EfetividadeGolpe = "Waza-Ari"
	EfetividadeIppon       EfetividadeGolpe = "Ippon"
	EfetividadeGolpeFalho  EfetividadeGolpe = "Golpe Falho"
	EfetividadeGolpeFalso  EfetividadeGolpe = "Golpe Falso"
	EfetividadeIrrelevante EfetividadeGolpe = "Irrelevante"
	EfetividadeContraGolpe EfetividadeGolpe = "Sofreu Contra-Golpe"
	EfetividadeTransicao   EfetividadeGolpe = "Transição"
)

var EfetividadesGolpe = []EfetividadeGolpe{
	EfetividadeYuko, EfetividadeWazaAri, EfetividadeIppon, EfetividadeGolpeFalho,
	EfetividadeGolpeFalso, EfetividadeIrrelevante, EfetividadeContraGolpe, EfetividadeTransicao,
}

func (e EfetividadeGolpe) Valido() bool { return slices.Contains(EfetividadesGolpe, e) }

// Pontua indica se a efetividade entra no placar.
func (e EfetividadeGolpe) Pontua() bool {
	return e == EfetividadeYuko || e == EfetividadeWazaAri || e == EfetividadeIppon
}

// OrigemNewaza é a posição de onde partiu a passagem no solo.
type OrigemNewaza string

var OrigensNewaza = []OrigemNewaza{"Cabeça", "Costas", "Lateral", "Meia-Guarda", "Guarda", "Oportunista"}

func (o OrigemNewaza) Valido() bool { return slices.Contains(OrigensNewaza, o) }

type EfetividadeNewaza string

const (
	NewazaYuko         EfetividadeNewaza = "Yuko"
	NewazaWazaAri      EfetividadeNewaza = "Waza-Ari"
	NewazaIppon        EfetividadeNewaza = "Ippon"
	NewazaNada         EfetividadeNewaza = "Nada"
	NewazaContraAtaque EfetividadeNewaza = "Sofreu Contra-Ataque"
)

var EfetividadesNewaza = []EfetividadeNewaza{NewazaYuko, NewazaWazaAri, NewazaIppon, NewazaNada, NewazaContraAtaque}

func (e EfetividadeNewaza) Valido() bool { return slices.Contains(EfetividadesNewaza, e) }

// FaixaTempo agrupa o momento da luta em que algo aconteceu.
type FaixaTempo string

const (
	FaixaMinuto0     FaixaTempo = "Minuto 0"
	FaixaMinuto1     FaixaTempo = "Minuto 1"
	FaixaMinuto2     FaixaTempo = "Minuto 2"
	FaixaMinuto3     FaixaTempo = "Minuto 3"
	FaixaGoldenScore FaixaTempo = "Golden Score"
)

var FaixasTempo = []FaixaTempo{FaixaMinuto3, FaixaMinuto2, FaixaMinuto1, FaixaMinuto0, FaixaGoldenScore}

func (f FaixaTempo) Valido() bool { return slices.Contains(FaixasTempo, f) }

// Duracao devolve o início da faixa. Golden Score começa após os quatro minutos regulamentares.
func (f FaixaTempo) Duracao() time.Duration {
	switch f {
	case FaixaMinuto1:
		return time.Minute
	case FaixaMinuto2:
		return 2 * time.Minute
	case FaixaMinuto3:
		return 3 * time.Minute
	case FaixaGoldenScore:
		return 4 * time.Minute
	default:
		return 0
	}
}

type TipoShido string

var TiposShido = []TipoShido{
	"Golpe Falso", "Falta de Combatividade", "Desligar Kumi-Kata", "Kumi-Kata Irregular",
	"Pegar na Perna", "Judô Negativo", "Passou a Cabeça",
}

func (t TipoShido) Valido() bool { return slices.Contains(TiposShido, t) }

// Quadrante do tatame na troca em pé. Zero representa posição desconhecida.
type Quadrante int

const (
	QuadranteDesconhecido Quadrante = 0
	QuadranteSuperiorEsq  Quadrante = 1
	QuadranteSuperiorDir  Quadrante = 2
	QuadranteInferiorEsq  Quadrante = 3
	QuadranteInferiorDir  Quadrante = 4
)

func (q Quadrante) Definido() bool { return q >= QuadranteSuperiorEsq && q <= QuadranteInferiorDir }

// DirecaoNewaza é a zona do diagrama de solo onde a passagem terminou.
type DirecaoNewaza string

const (
	DirecaoDEF        DirecaoNewaza = "DEF"
	DirecaoF          DirecaoNewaza = "F"
	DirecaoDDF        DirecaoNewaza = "DDF"
	DirecaoLE         DirecaoNewaza = "LE"
	DirecaoLD         DirecaoNewaza = "LD"
	DirecaoDET        DirecaoNewaza = "DET"
	DirecaoT          DirecaoNewaza = "T"
	DirecaoDDT        DirecaoNewaza = "DDT"
	DirecaoIndefinida DirecaoNewaza = "Não definida"
)

var DirecoesNewaza = []DirecaoNewaza{
	DirecaoDEF, DirecaoF, DirecaoDDF, DirecaoLE, DirecaoLD, DirecaoDET, DirecaoT, DirecaoDDT,
}

func (d DirecaoNewaza) Valido() bool {
	return d == DirecaoIndefinida || slices.Contains(DirecoesNewaza, d)
}
