package display

import "testing"

func TestFixedClamps(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{0, 1},
		{-2, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{100, 3},
	}

	for _, tt := range tests {
		if got := Fixed(tt.input).Scale(); got != tt.want {
			t.Errorf("Fixed(%d).Scale() = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 1},
		{"valid", "2", 2},
		{"clamped high", "9", 3},
		{"clamped low", "-1", 1},
		{"malformed", "retina", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Setenv("DISPLAY_SCALE", "")
			} else {
				t.Setenv("DISPLAY_SCALE", tt.value)
			}
			if got := FromEnv().Scale(); got != tt.want {
				t.Errorf("Scale() = %d, want %d", got, tt.want)
			}
		})
	}
}
