// Pacote ids gera os identificadores ULID usados como chave primária de todas as tabelas.
package ids

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produz ULIDs monotônicos; seguro para uso concorrente.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func NewGenerator() *Generator {
	return NewGeneratorWith(rand.Reader, time.Now)
}

// NewGeneratorWith permite fixar entropia e relógio, útil em testes determinísticos.
func NewGeneratorWith(entropy io.Reader, now func() time.Time) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(entropy, 0),
		now:     now,
	}
}

func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now().UTC()), g.entropy).String()
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

func DefaultGenerator() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator()
	})
	return defaultGen
}
