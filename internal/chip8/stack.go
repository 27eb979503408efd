package chip8

// stackDepth is the number of nested subroutine calls the machine supports.
// A ROM that exceeds it has a real bug, which is surfaced rather than masked.
const stackDepth = 16

// Stack is the fixed-depth return-address stack used by CALL and RET.
type Stack struct {
	data [stackDepth]uint16
	sp   uint8
}

// Push appends a return address. It fails with ErrStackOverflow when the
// stack is full, leaving the stack unchanged.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= stackDepth {
		return ErrStackOverflow
	}
	s.data[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recently pushed address. It fails with
// ErrStackUnderflow when the stack is empty.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.data[s.sp], nil
}

// Depth returns the number of addresses currently on the stack.
func (s *Stack) Depth() int {
	return int(s.sp)
}

// Peek returns the address on top of the stack without removing it. The
// second return value is false when the stack is empty.
func (s *Stack) Peek() (uint16, bool) {
	if s.sp == 0 {
		return 0, false
	}
	return s.data[s.sp-1], true
}
