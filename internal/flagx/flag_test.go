package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		valueFlags []string
		boolFlags  []string
		want       []string
	}{
		{
			name:       "short flag with separate value",
			args:       []string{"-c", "conf.json", "-x", "localhost"},
			valueFlags: []string{"c", "config"},
			want:       []string{"-c", "conf.json"},
		},
		{
			name:       "double dash with equals",
			args:       []string{"--config=alt.json", "-a", "localhost"},
			valueFlags: []string{"c", "config"},
			want:       []string{"--config=alt.json"},
		},
		{
			name:       "order is preserved",
			args:       []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			valueFlags: []string{"c", "config"},
			want:       []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:       "unknown flags and positionals ignored",
			args:       []string{"-x", "1", "--y=2", "positional"},
			valueFlags: []string{"c"},
			want:       []string{},
		},
		{
			name:       "value flag at the end is kept without value",
			args:       []string{"-c"},
			valueFlags: []string{"c"},
			want:       []string{"-c"},
		},
		{
			name:       "next token starting with dash is not a value",
			args:       []string{"-c", "-notvalue"},
			valueFlags: []string{"c"},
			want:       []string{"-c"},
		},
		{
			name:       "bool flag does not swallow the next token",
			args:       []string{"-strict", "payload.exe", "-a", ":3001"},
			valueFlags: []string{"a"},
			boolFlags:  []string{"strict"},
			want:       []string{"-strict", "-a", ":3001"},
		},
		{
			name:       "bool flag with explicit value",
			args:       []string{"-strict=false"},
			boolFlags:  []string{"strict"},
			want:       []string{"-strict=false"},
		},
		{
			name:       "lone dashes are not flags",
			args:       []string{"-", "--", "-a", "x"},
			valueFlags: []string{"a"},
			want:       []string{"-a", "x"},
		},
		{
			name:       "empty args",
			args:       []string{},
			valueFlags: []string{"c"},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.valueFlags, tt.boolFlags...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigFileFlag())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "--config=/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigFileFlag())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-strict"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigFileFlag())
	})
}
