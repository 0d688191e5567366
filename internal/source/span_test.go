package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "other extends to the right",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 15, End: 30},
			expected: Span{File: 1, Start: 10, End: 30},
		},
		{
			name:     "other extends to the left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 2, End: 12},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "other contained within",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 12, End: 15},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "different file leaves span untouched",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_EmptyAndLen(t *testing.T) {
	empty := Span{File: 1, Start: 7, End: 7}
	if !empty.Empty() {
		t.Error("Expected zero-length span to be empty")
	}
	if empty.Len() != 0 {
		t.Errorf("Expected Len 0, got %d", empty.Len())
	}

	full := Span{File: 1, Start: 7, End: 12}
	if full.Empty() {
		t.Error("Did not expect non-empty span to report Empty")
	}
	if full.Len() != 5 {
		t.Errorf("Expected Len 5, got %d", full.Len())
	}
}

func TestSpan_At(t *testing.T) {
	span := At(3, 41)
	expected := Span{File: 3, Start: 41, End: 42}
	if span != expected {
		t.Errorf("At() = %+v, want %+v", span, expected)
	}
	if span.Len() != 1 {
		t.Errorf("Expected single-byte span, got length %d", span.Len())
	}
}

func TestSpan_String(t *testing.T) {
	span := Span{File: 2, Start: 5, End: 9}
	if got := span.String(); got != "2:5-9" {
		t.Errorf("String() = %q, want %q", got, "2:5-9")
	}
}
