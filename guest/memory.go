package guest

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/typeconv/errors"
)

const (
	pageSize = 65536

	// heapBase keeps offset 0 unused so a zero pointer never names live data.
	heapBase = 8
)

// (module (memory (export "memory") 1))
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: one memory, min 1 page
	0x07, 0x0a, 0x01, // export section: one export
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, // "memory" -> memory 0
}

// Config holds configuration for memory creation
type Config struct {
	// MemoryLimitPages caps growth in pages (64KB each).
	// 0 means the runtime default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// Memory is a WebAssembly linear memory with a bump allocator. Allocations
// are released all at once by Reset.
type Memory struct {
	runtime wazero.Runtime
	module  api.Module
	mem     api.Memory
	mu      sync.Mutex
	next    uint32
}

// NewMemory creates a memory with the default configuration.
func NewMemory(ctx context.Context) (*Memory, error) {
	return NewMemoryWithConfig(ctx, nil)
}

// NewMemoryWithConfig instantiates a module exporting one page of memory.
func NewMemoryWithConfig(ctx context.Context, cfg *Config) (*Memory, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	mod, err := rt.InstantiateWithConfig(ctx, memoryModule, wazero.NewModuleConfig().WithName("typeconv-guest"))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("instantiate guest memory: %w", err)
	}

	mem := mod.Memory()
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.InvalidArgument(errors.PhaseLower, "guest module exports no memory")
	}

	return &Memory{
		runtime: rt,
		module:  mod,
		mem:     mem,
		next:    heapBase,
	}, nil
}

// Alloc reserves size bytes aligned to align, growing the memory as needed.
func (m *Memory) Alloc(size, align uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alloc(size, align)
}

func (m *Memory) alloc(size, align uint32) (uint32, error) {
	if align == 0 || align&(align-1) != 0 {
		return 0, errors.InvalidArgument(errors.PhaseLower, fmt.Sprintf("alignment %d is not a power of two", align))
	}

	ptr := (uint64(m.next) + uint64(align) - 1) &^ (uint64(align) - 1)
	end := ptr + uint64(size)
	if end > math.MaxUint32 {
		return 0, errors.AllocationFailed(errors.PhaseLower, size, align)
	}

	if have := uint64(m.mem.Size()); end > have {
		pages := (end - have + pageSize - 1) / pageSize
		if _, ok := m.mem.Grow(uint32(pages)); !ok {
			return 0, errors.AllocationFailed(errors.PhaseLower, size, align)
		}
	}

	m.next = uint32(end)
	return uint32(ptr), nil
}

// Reset releases every allocation. Lists lowered before the reset must not
// be lifted afterwards.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.next = heapBase
	m.mu.Unlock()
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// Used returns the number of bytes below the allocation cursor.
func (m *Memory) Used() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next
}

// Close releases the underlying runtime.
func (m *Memory) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}

func (m *Memory) write(ptr uint32, data []byte) error {
	if !m.mem.Write(ptr, data) {
		return errors.New(errors.PhaseLower, errors.KindOutOfBounds).
			Detail("write of %d bytes at %d exceeds memory size %d", len(data), ptr, m.mem.Size()).
			Build()
	}
	return nil
}

func (m *Memory) read(ptr, n uint32) ([]byte, bool) {
	return m.mem.Read(ptr, n)
}
