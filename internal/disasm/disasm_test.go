package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want string
	}{
		{"cls", 0x00E0, "cls"},
		{"ret", 0x00EE, "ret"},
		{"jp", 0x1234, "jp"},
		{"call", 0x2234, "call"},
		{"drw", 0xD125, "drw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.word))
		})
	}
}

func TestSprint_Unknown(t *testing.T) {
	assert.Equal(t, "FFFF (???)", Sprint(0xFFFF))
}
