package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Options
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"prog", "game.ch8"},
			want: Options{ROM: "game.ch8", CPUHz: defaultCPUHz},
		},
		{
			name: "all flags",
			args: []string{"prog", "-cpu", "1000", "-mute", "-debug", "game.ch8"},
			want: Options{ROM: "game.ch8", CPUHz: 1000, Mute: true, Debug: true},
		},
		{
			name: "quiet",
			args: []string{"prog", "-q", "game.ch8"},
			want: Options{ROM: "game.ch8", CPUHz: defaultCPUHz, Quiet: true},
		},
		{
			name:    "missing rom",
			args:    []string{"prog"},
			wantErr: true,
		},
		{
			name:    "too many arguments",
			args:    []string{"prog", "a.ch8", "b.ch8"},
			wantErr: true,
		},
		{
			name:    "invalid cpu rate",
			args:    []string{"prog", "-cpu", "0", "game.ch8"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags(tt.args)
			if tt.wantErr {
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}
