package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveVerificationPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"csv extension", "output/beauty_output.csv", "output/beauty_output_verification.txt"},
		{"no extension", "output/beauty_output", "output/beauty_output_verification.txt"},
		{"txt extension", "result.txt", "result_verification.txt"},
		{"dotted directory", "out.d/result.csv", "out.d/result_verification.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveVerificationPath(tt.output))
		})
	}
}
