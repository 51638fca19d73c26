// Pacote tatame converte cliques nos diagramas do tatame em zonas semânticas.
package tatame

import "github.com/marcelojr/analise-judo/internal/domain"

// Tamanho é o lado, em pixels, dos dois diagramas quadrados.
const Tamanho = 250.0

const meio = Tamanho / 2

// Cortes da grade 3x3 do diagrama de ne-waza. Não são Tamanho/3: cliques já gravados
// dependem destes valores exatos.
const (
	corte1 = 83.33
	corte2 = 166.66
)

// Quadrante devolve o quadrante de tachi-waza. Pontos sobre as linhas divisórias,
// sobre a borda ou fora do diagrama são desconhecidos.
func Quadrante(p domain.Ponto) domain.Quadrante {
	switch {
	case entre(p.X, 0, meio) && entre(p.Y, 0, meio):
		return domain.QuadranteSuperiorEsq
	case entre(p.X, meio, Tamanho) && entre(p.Y, 0, meio):
		return domain.QuadranteSuperiorDir
	case entre(p.X, 0, meio) && entre(p.Y, meio, Tamanho):
		return domain.QuadranteInferiorEsq
	case entre(p.X, meio, Tamanho) && entre(p.Y, meio, Tamanho):
		return domain.QuadranteInferiorDir
	default:
		return domain.QuadranteDesconhecido
	}
}

// grade[linha][coluna]; a célula central não tem rótulo.
var grade = [3][3]domain.DirecaoNewaza{
	{domain.DirecaoDEF, domain.DirecaoF, domain.DirecaoDDF},
	{domain.DirecaoLE, domain.DirecaoIndefinida, domain.DirecaoLD},
	{domain.DirecaoDET, domain.DirecaoT, domain.DirecaoDDT},
}

// DirecaoNewaza devolve a zona do diagrama de solo. Célula central, linhas de corte
// e pontos fora do diagrama resultam em DirecaoIndefinida.
func DirecaoNewaza(p domain.Ponto) domain.DirecaoNewaza {
	col, okX := faixa(p.X)
	lin, okY := faixa(p.Y)
	if !okX || !okY {
		return domain.DirecaoIndefinida
	}
	return grade[lin][col]
}

func faixa(v float64) (int, bool) {
	switch {
	case entre(v, 0, corte1):
		return 0, true
	case entre(v, corte1, corte2):
		return 1, true
	case entre(v, corte2, Tamanho):
		return 2, true
	default:
		return 0, false
	}
}

// entre é exclusivo nas duas pontas; NaN sempre falha.
func entre(v, min, max float64) bool {
	return v > min && v < max
}
