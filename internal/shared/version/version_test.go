package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		build string
		want  string
	}{
		{"dev", "dev"},
		{"1.2", "v1.2.0"},
		{"v1.4.0", "v1.4.0"},
		{" 2.0.1 ", "v2.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.build, func(t *testing.T) {
			saved := Version
			t.Cleanup(func() { Version = saved })

			Version = tt.build
			assert.Equal(t, tt.want, String())
		})
	}
}
