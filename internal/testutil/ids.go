// Package testutil provides deterministic stand-ins for id generation and
// wall-clock time, so command output can be compared exactly.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs hands out ids "id-1", "id-2", ... in order.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewSequentialIDs creates a generator using prefix. An empty prefix means
// "id".
//
// The first call to Next() returns prefix + "-1".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDs{prefix: prefix}
}

// Next returns the next id.
func (g *SequentialIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}
