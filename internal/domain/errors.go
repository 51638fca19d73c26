package domain

import "errors"

// Erros de domínio devolvidos pela camada de repositório e pelo serviço.
// Chamadores devem compará-los com errors.Is, nunca pela mensagem.
var (
	ErrValidacao         = errors.New("dados invalidos")
	ErrNaoEncontrado     = errors.New("registro nao encontrado")
	ErrDuplicado         = errors.New("registro duplicado")
	ErrTransicaoInvalida = errors.New("transicao invalida")
	ErrConexao           = errors.New("banco de dados indisponivel")
	ErrArmazenamento     = errors.New("falha no armazenamento")
)

// TipoDoErro devolve um rótulo estável para logs e métricas.
func TipoDoErro(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidacao):
		return "validacao"
	case errors.Is(err, ErrNaoEncontrado):
		return "nao_encontrado"
	case errors.Is(err, ErrDuplicado):
		return "duplicado"
	case errors.Is(err, ErrTransicaoInvalida):
		return "transicao_invalida"
	case errors.Is(err, ErrConexao):
		return "conexao"
	case errors.Is(err, ErrArmazenamento):
		return "armazenamento"
	default:
		return "desconhecido"
	}
}
