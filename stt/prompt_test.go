package stt

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildInitialPrompt(t *testing.T) {
	t.Run("empty glossary yields style sentence only", func(t *testing.T) {
		got := BuildInitialPrompt(nil)
		if got != stylePrompt {
			t.Fatalf("got %q", got)
		}
		if strings.Contains(got, "Glossary") {
			t.Fatal("no glossary section expected")
		}
	})

	t.Run("glossary appended", func(t *testing.T) {
		got := BuildInitialPrompt([]string{"Kubernetes", "gRPC"})
		want := stylePrompt + " Glossary: Kubernetes, gRPC"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("oversized glossary truncated at word boundary", func(t *testing.T) {
		words := make([]string, 200)
		for i := range words {
			words[i] = fmt.Sprintf("terminology%03d", i)
		}

		got := BuildInitialPrompt(words)
		if len(got) > maxPromptChars {
			t.Fatalf("prompt length %d exceeds cap %d", len(got), maxPromptChars)
		}
		if !strings.HasPrefix(got, stylePrompt+" Glossary: ") {
			t.Fatalf("unexpected prefix: %q", got)
		}
		// Every included term must be intact.
		glossary := strings.TrimPrefix(got, stylePrompt+" Glossary: ")
		for _, term := range strings.Split(glossary, ", ") {
			if !strings.HasPrefix(term, "terminology") || len(term) != len("terminology000") {
				t.Fatalf("truncation split a word: %q", term)
			}
		}
	})
}

func TestFloat32ToWAV(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 2.0, -2.0}
	data, err := float32ToWAV(samples, 16000)
	if err != nil {
		t.Fatalf("float32ToWAV: %v", err)
	}

	if len(data) != 44+len(samples)*2 {
		t.Fatalf("len = %d, want %d", len(data), 44+len(samples)*2)
	}
	if string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE header")
	}

	// Out-of-range samples clamp instead of wrapping.
	s3 := int16(data[44+6]) | int16(data[44+7])<<8
	s4 := int16(data[44+8]) | int16(data[44+9])<<8
	if s3 != 32767 {
		t.Fatalf("clamped high sample = %d, want 32767", s3)
	}
	if s4 != -32767 {
		t.Fatalf("clamped low sample = %d, want -32767", s4)
	}
}
