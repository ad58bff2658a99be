package asm

// memory.go implements the 64 KiB program memory described in §3: an array of optional bytes.
// Unwritten cells are distinguished from a written zero by a parallel bitmap rather than a sentinel
// value, sidestepping the open question in §9 about what the reference's -1 sentinel casts to.

const memorySize = 1 << 16

// Memory is the 64 KiB program memory image. Create one with NewMemory: the zero value reports
// cell 0 as already written.
type Memory struct {
	cells   [memorySize]byte
	written [memorySize]bool
	first   int // lowest written index, or -1 if nothing has been written
	last    int // highest written index, or -1 if nothing has been written
}

// NewMemory creates an empty program memory.
func NewMemory() *Memory {
	return &Memory{first: -1, last: -1}
}

// Write stores b at addr. It returns ErrExceededProgramMemory if addr is outside the 64 KiB image.
func (m *Memory) Write(addr uint32, b byte) error {
	if addr >= memorySize {
		return ErrExceededProgramMemory
	}

	m.cells[addr] = b
	m.written[addr] = true

	if m.first == -1 || int(addr) < m.first {
		m.first = int(addr)
	}

	if m.last == -1 || int(addr) > m.last {
		m.last = int(addr)
	}

	return nil
}

// FirstWritten returns the lowest written cell index and true, or 0 and false if nothing has been
// written.
func (m *Memory) FirstWritten() (int, bool) {
	if m.first == -1 {
		return 0, false
	}

	return m.first, true
}

// Bytes returns the binary image from the first written cell through lcFinal, exclusive, per
// §6: cells in that range which were never explicitly written are zero-filled.
func (m *Memory) Bytes(lcFinal uint32) []byte {
	if m.first == -1 {
		return nil
	}

	last := int(lcFinal) - 1
	if last < m.first {
		return nil
	}

	out := make([]byte, last-m.first+1)
	copy(out, m.cells[m.first:last+1])

	return out
}
