package docnum

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type Kind string

const (
	KindSale     Kind = "sale"
	KindPurchase Kind = "purchase"
)

const (
	salePrefix     = "MV"
	purchasePrefix = "PUR"
)

// Generator produces human-readable document numbers: a kind prefix, the
// last six digits of the epoch-millisecond timestamp, and a zero-padded
// three-digit random component. This is best effort only; uniqueness is
// enforced by the UNIQUE index on the ledger tables, and callers regenerate
// on a duplicate-entry rejection.
type Generator interface {
	Next(kind Kind) string
}

type RandomGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewGenerator() *RandomGenerator {
	return &RandomGenerator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

func (g *RandomGenerator) Next(kind Kind) string {
	prefix := salePrefix
	if kind == KindPurchase {
		prefix = purchasePrefix
	}

	g.mu.Lock()
	n := g.rnd.Intn(1000)
	g.mu.Unlock()

	millis := g.now().UnixMilli()
	return fmt.Sprintf("%s%06d%03d", prefix, millis%1000000, n)
}
