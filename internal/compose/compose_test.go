package compose

import (
	"strings"
	"testing"
)

// --- Guidance Fallback Tests ---

func TestGuidanceFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", DefaultGuidance},
		{"whitespace", "   \n\t ", DefaultGuidance},
		{"verbatim", "dreamy dusk light", "dreamy dusk light"},
		{"trimmed", "  at a beach  ", "at a beach"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guidance(tt.raw); got != tt.want {
				t.Errorf("Guidance(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// --- Blend Prompt Tests ---

func TestBlendDescribeRequestContainsStyleVerbatim(t *testing.T) {
	prompt := BlendDescribeRequest("Fusion", "", 2)

	if !strings.Contains(prompt, "Fusion") {
		t.Error("expected prompt to contain the style name verbatim")
	}
	if !strings.Contains(prompt, DefaultGuidance) {
		t.Error("expected prompt to contain the default guidance phrase")
	}
	if !strings.Contains(prompt, "2 attached images") {
		t.Error("expected prompt to state the image count")
	}
}

func TestBlendDescribeRequestGuidanceVerbatim(t *testing.T) {
	prompt := BlendDescribeRequest("Surreal Collage", "floating above <rooftops> & chimneys", 4)

	if !strings.Contains(prompt, "floating above <rooftops> & chimneys") {
		t.Error("expected guidance to be inserted verbatim, no escaping")
	}
	if strings.Contains(prompt, DefaultGuidance) {
		t.Error("expected default guidance to be absent when guidance is given")
	}
}

func TestBlendDescribeRequestDeterministic(t *testing.T) {
	a := BlendDescribeRequest("Painterly Blend", "soft light", 3)
	b := BlendDescribeRequest("Painterly Blend", "soft light", 3)
	if a != b {
		t.Error("expected identical inputs to produce identical prompts")
	}
}

// --- Swap Prompt Tests ---

func TestSwapInstruction(t *testing.T) {
	instr := SwapInstruction("at a beach")

	if !strings.Contains(instr, "first image is the scene") {
		t.Error("expected instruction to identify the first image as the scene")
	}
	if !strings.Contains(instr, "face reference") {
		t.Error("expected instruction to identify the face reference")
	}
	if !strings.Contains(instr, "at a beach") {
		t.Error("expected guidance to be incorporated")
	}
}

func TestSwapInstructionDefaultGuidance(t *testing.T) {
	instr := SwapInstruction(" \t")
	if !strings.Contains(instr, DefaultGuidance) {
		t.Error("expected the default guidance phrase for whitespace input")
	}
}
