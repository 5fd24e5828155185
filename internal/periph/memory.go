// Package periph simulates the memory-mapped peripherals the game runs
// against: an LED matrix, a switch bank and a four-way D-pad. Devices are
// word-addressed regions on a Bus; every access goes through an address.
package periph

import (
	"errors"
	"fmt"
	"sync"
)

// WordSize is the width of one register in bytes.
const WordSize = 4

// ErrBusFault is returned for accesses outside every mapped region or not
// aligned to a word.
var ErrBusFault = errors.New("periph: bus fault")

// Memory is one contiguous word-addressed region.
// It is safe for concurrent use; platform goroutines poke registers while
// the game loop runs.
type Memory struct {
	mu     sync.RWMutex
	name   string
	origin uint32
	words  []uint32
}

// NewMemory allocates a zeroed region of n words starting at origin.
func NewMemory(name string, origin uint32, n int) *Memory {
	return &Memory{
		name:   name,
		origin: origin,
		words:  make([]uint32, n),
	}
}

// Name returns the device name of the region.
func (m *Memory) Name() string {
	return m.name
}

// Origin returns the first byte address of the region.
func (m *Memory) Origin() uint32 {
	return m.origin
}

// Memtop returns the last byte address of the region.
func (m *Memory) Memtop() uint32 {
	return m.origin + uint32(len(m.words))*WordSize - 1
}

// Contains reports whether addr falls inside the region.
func (m *Memory) Contains(addr uint32) bool {
	return addr >= m.origin && addr <= m.Memtop()
}

func (m *Memory) index(addr uint32) (int, error) {
	if !m.Contains(addr) || (addr-m.origin)%WordSize != 0 {
		return 0, fmt.Errorf("%w: %s at 0x%08x", ErrBusFault, m.name, addr)
	}
	return int((addr - m.origin) / WordSize), nil
}

// Read returns the word at addr.
func (m *Memory) Read(addr uint32) (uint32, error) {
	i, err := m.index(addr)
	if err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.words[i], nil
}

// Write stores v at addr.
func (m *Memory) Write(addr, v uint32) error {
	i, err := m.index(addr)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.words[i] = v
	m.mu.Unlock()
	return nil
}

// Fill stores v into n consecutive words starting at addr.
func (m *Memory) Fill(addr uint32, n int, v uint32) error {
	i, err := m.index(addr)
	if err != nil {
		return err
	}
	if i+n > len(m.words) {
		return fmt.Errorf("%w: %s fill of %d words at 0x%08x", ErrBusFault, m.name, n, addr)
	}
	m.mu.Lock()
	for j := i; j < i+n; j++ {
		m.words[j] = v
	}
	m.mu.Unlock()
	return nil
}

// ReadBlock copies n consecutive words starting at addr.
func (m *Memory) ReadBlock(addr uint32, n int) ([]uint32, error) {
	i, err := m.index(addr)
	if err != nil {
		return nil, err
	}
	if i+n > len(m.words) {
		return nil, fmt.Errorf("%w: %s read of %d words at 0x%08x", ErrBusFault, m.name, n, addr)
	}
	out := make([]uint32, n)
	m.mu.RLock()
	copy(out, m.words[i:i+n])
	m.mu.RUnlock()
	return out, nil
}

// Bus routes addresses to the mapped regions.
type Bus struct {
	regions []*Memory
}

// NewBus creates a bus over the given regions.
// Panics if two regions overlap.
func NewBus(regions ...*Memory) *Bus {
	for i, a := range regions {
		for _, b := range regions[i+1:] {
			if a.origin <= b.Memtop() && b.origin <= a.Memtop() {
				panic(fmt.Sprintf("periph: regions %s and %s overlap", a.name, b.name))
			}
		}
	}
	return &Bus{regions: regions}
}

// Region returns the region containing addr.
func (b *Bus) Region(addr uint32) (*Memory, error) {
	for _, r := range b.regions {
		if r.Contains(addr) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: unmapped address 0x%08x", ErrBusFault, addr)
}

// Read returns the word at addr.
func (b *Bus) Read(addr uint32) (uint32, error) {
	r, err := b.Region(addr)
	if err != nil {
		return 0, err
	}
	return r.Read(addr)
}

// Write stores v at addr.
func (b *Bus) Write(addr, v uint32) error {
	r, err := b.Region(addr)
	if err != nil {
		return err
	}
	return r.Write(addr, v)
}

// Fill stores v into n words starting at addr. The block must lie in one region.
func (b *Bus) Fill(addr uint32, n int, v uint32) error {
	r, err := b.Region(addr)
	if err != nil {
		return err
	}
	return r.Fill(addr, n, v)
}

// ReadBlock copies n words starting at addr. The block must lie in one region.
func (b *Bus) ReadBlock(addr uint32, n int) ([]uint32, error) {
	r, err := b.Region(addr)
	if err != nil {
		return nil, err
	}
	return r.ReadBlock(addr, n)
}
