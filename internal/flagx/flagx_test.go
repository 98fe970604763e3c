package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "value starting with dash is not consumed",
			args:         []string{"-c", "-a"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"app", "-c", "conf.json"}, "conf.json"},
		{"long flag", []string{"app", "-config", "alt.json"}, "alt.json"},
		{"absent", []string{"app", "-a", "localhost"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, JsonConfigFlags())
		})
	}
}
