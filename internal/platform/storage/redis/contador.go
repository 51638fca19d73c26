package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/analise-judo/internal/domain"
)

// Contador mantém o placar ao vivo em chaves inteiras com prefixo comum.
type Contador struct {
	client *redis.Client
	prefix string
}

func NewContador(client *redis.Client, prefix string) *Contador {
	return &Contador{
		client: client,
		prefix: prefix,
	}
}

// Incrementar aplica todos os deltas em um único MULTI/EXEC, então o placar de uma
// ação nunca aparece pela metade.
func (c *Contador) Incrementar(ctx context.Context, deltas map[string]int64) error {
	if len(deltas) == 0 {
		return nil
	}

	chaves := make([]string, 0, len(deltas))
	for chave := range deltas {
		chaves = append(chaves, chave)
	}
	sort.Strings(chaves)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, chave := range chaves {
			pipe.IncrBy(ctx, c.key(chave), deltas[chave])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis contador: incrementar: %w", err)
	}
	return nil
}

// Definir sobrescreve os valores de uma vez; usado para ressemear o placar a partir do banco.
func (c *Contador) Definir(ctx context.Context, valores map[string]int64) error {
	if len(valores) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for chave, valor := range valores {
			pipe.Set(ctx, c.key(chave), valor, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis contador: definir: %w", err)
	}
	return nil
}

func (c *Contador) ObterTodos(ctx context.Context, chaves []string) (map[string]int64, error) {
	if len(chaves) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(chaves))
	for i, ch := range chaves {
		keys[i] = c.key(ch)
	}

	valores, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis contador: ler: %w", err)
	}

	resultado := make(map[string]int64, len(chaves))
	for i, raw := range valores {
		if raw == nil {
			resultado[chaves[i]] = 0
			continue
		}

		switch v := raw.(type) {
		case string:
			num, convErr := strconv.ParseInt(v, 10, 64)
			if convErr != nil {
				return nil, fmt.Errorf("redis contador: valor invalido para %s: %w", chaves[i], convErr)
			}
			resultado[chaves[i]] = num
		case int64:
			resultado[chaves[i]] = v
		default:
			return nil, fmt.Errorf("redis contador: tipo inesperado %T", raw)
		}
	}

	return resultado, nil
}

// Remover apaga as chaves de um confronto excluído.
func (c *Contador) Remover(ctx context.Context, chaves ...string) error {
	if len(chaves) == 0 {
		return nil
	}

	keys := make([]string, len(chaves))
	for i, ch := range chaves {
		keys[i] = c.key(ch)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis contador: remover: %w", err)
	}
	return nil
}

func (c *Contador) key(chave string) string {
	if c.prefix == "" {
		return chave
	}
	return c.prefix + ":" + chave
}

var _ domain.Contador = (*Contador)(nil)
