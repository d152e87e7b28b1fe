// Package ids provides the identifier strategies used when records are created.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() Generator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator hands out prefix-1, prefix-2, ... and is meant for tests.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
