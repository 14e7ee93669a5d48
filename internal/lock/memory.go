package lock

import (
	"context"
	"sync/atomic"
)

type Memory struct {
	held atomic.Bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) TryLock(context.Context) (bool, error) {
	return m.held.CompareAndSwap(false, true), nil
}

func (m *Memory) Unlock(context.Context) error {
	m.held.Store(false)
	return nil
}
