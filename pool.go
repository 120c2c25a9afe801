package dw2md

import (
	"runtime"
	"sync"
)

// Pool sizing bounds. Conversion is CPU-bound regex work, so sizes
// beyond the CPU count only add scheduling overhead.
const (
	MinPoolSize = 1
	MaxPoolSize = 16
)

// ConverterPool manages a fixed number of converters for concurrent
// batch conversion. Converters are created lazily on first Acquire and
// reused after Release.
type ConverterPool struct {
	converters chan *Converter
	opts       []Option
	size       int

	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool of up to size converters, each built
// with the given options. Size is clamped to the valid range.
func NewConverterPool(size int, opts ...Option) *ConverterPool {
	if size < MinPoolSize {
		size = MinPoolSize
	}
	if size > MaxPoolSize {
		size = MaxPoolSize
	}
	return &ConverterPool{
		converters: make(chan *Converter, size),
		opts:       opts,
		size:       size,
	}
}

// ResolvePoolSize maps a requested worker count to a pool size. Zero
// means one worker per CPU.
func ResolvePoolSize(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// Acquire returns a converter, preferring a pooled one and creating a
// new one while the pool is below capacity. Blocks when all converters
// are in use. Returns nil after Close.
func (p *ConverterPool) Acquire() *Converter {
	select {
	case c := <-p.converters:
		return c
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return NewConverter(p.opts...)
	}
	p.mu.Unlock()

	return <-p.converters
}

// Release returns a converter to the pool. Releasing nil is a no-op.
// The send happens under the mutex so it cannot race a Close; it never
// blocks because the channel is buffered to the pool size.
func (p *ConverterPool) Release(c *Converter) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.converters <- c
}

// Close marks the pool closed and drops pooled converters. Converters
// hold no external resources, so Close never blocks on them.
func (p *ConverterPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.converters)
	for range p.converters {
	}
}
