// Package ident provides id generation for index nodes and jobs.
// Builders take a Generator so tests can assert exact ids.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces ids unique within one index.
type Generator interface {
	NewID() string
}

// UUIDGenerator produces random UUID ids. This is the production default.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequentialGenerator produces "prefix-0001", "prefix-0002", ... ids.
// Deterministic, for tests and reproducible index builds.
type SequentialGenerator struct {
	Prefix string
	n      atomic.Int64
}

func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{Prefix: prefix}
}

func (g *SequentialGenerator) NewID() string {
	n := g.n.Add(1)
	if g.Prefix == "" {
		return fmt.Sprintf("%04d", n)
	}
	return fmt.Sprintf("%s-%04d", g.Prefix, n)
}
