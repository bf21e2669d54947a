package core

import "sync"

// RegisterWrite is one recorded bus write.
type RegisterWrite struct {
	Addr  Address
	Value uint32
}

// WriteHook runs after a write to its register has been stored. It may use
// Poke to update other registers the way the hardware would.
type WriteHook func(s *SimRegisters, value uint32)

// SimRegisters is an in-memory register file. Unwritten registers read as
// zero. It records every Write so tests can check exactly what reached the
// bus.
type SimRegisters struct {
	mu        sync.Mutex
	regs      map[Address]uint32
	writes    []RegisterWrite
	hooks     map[Address]WriteHook
	writeOnly map[Address]bool
}

// NewSimRegisters creates an empty register file
func NewSimRegisters() *SimRegisters {
	return &SimRegisters{
		regs:      make(map[Address]uint32),
		hooks:     make(map[Address]WriteHook),
		writeOnly: make(map[Address]bool),
	}
}

func (s *SimRegisters) Read(addr Address) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeOnly[addr] {
		return 0
	}
	return s.regs[addr]
}

func (s *SimRegisters) Write(addr Address, value uint32) {
	s.mu.Lock()
	s.writes = append(s.writes, RegisterWrite{Addr: addr, Value: value})
	s.regs[addr] = value
	hook := s.hooks[addr]
	s.mu.Unlock()

	if hook != nil {
		hook(s, value)
	}
}

// Poke stores value at addr without recording a write or running hooks.
// It models state the hardware changes on its own, like input levels.
func (s *SimRegisters) Poke(addr Address, value uint32) {
	s.mu.Lock()
	s.regs[addr] = value
	s.mu.Unlock()
}

// Update replaces the stored value at addr with fn(old) under one lock.
// Like Poke it records no write and runs no hook.
func (s *SimRegisters) Update(addr Address, fn func(uint32) uint32) {
	s.mu.Lock()
	s.regs[addr] = fn(s.regs[addr])
	s.mu.Unlock()
}

// Peek returns the stored value at addr, including write-only registers.
func (s *SimRegisters) Peek(addr Address) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[addr]
}

// OnWrite installs hook for addr, replacing any previous one.
func (s *SimRegisters) OnWrite(addr Address, hook WriteHook) {
	s.mu.Lock()
	s.hooks[addr] = hook
	s.mu.Unlock()
}

// SetWriteOnly marks addr as reading back zero.
func (s *SimRegisters) SetWriteOnly(addr Address) {
	s.mu.Lock()
	s.writeOnly[addr] = true
	s.mu.Unlock()
}

// Writes returns a copy of the write log.
func (s *SimRegisters) Writes() []RegisterWrite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RegisterWrite, len(s.writes))
	copy(out, s.writes)
	return out
}

// WritesTo returns the values written to addr, oldest first.
func (s *SimRegisters) WritesTo(addr Address) []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint32
	for _, w := range s.writes {
		if w.Addr == addr {
			out = append(out, w.Value)
		}
	}
	return out
}

// ResetLog clears the write log but keeps register contents.
func (s *SimRegisters) ResetLog() {
	s.mu.Lock()
	s.writes = nil
	s.mu.Unlock()
}

// Snapshot returns a copy of all register contents.
func (s *SimRegisters) Snapshot() map[Address]uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Address]uint32, len(s.regs))
	for k, v := range s.regs {
		out[k] = v
	}
	return out
}
