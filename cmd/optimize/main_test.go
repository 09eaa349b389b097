package main

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00.000s"},
		{1500 * time.Millisecond, "0m01.500s"},
		{2*time.Minute + 3*time.Second, "2m03.000s"},
		{time.Hour + 4*time.Minute + 5*time.Second, "1h04m05.000s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
