package diag

import (
	"testing"

	"bracelint/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(BrkUnmatchedClose, source.At(0, 0), "first")) {
		t.Error("Expected first Add to succeed")
	}
	if !bag.Add(NewError(BrkUnmatchedClose, source.At(0, 1), "second")) {
		t.Error("Expected second Add to succeed")
	}
	if bag.Add(NewError(BrkUnmatchedClose, source.At(0, 2), "third")) {
		t.Error("Expected third Add to be dropped at capacity")
	}
	if bag.Len() != 2 {
		t.Errorf("Expected length 2, got %d", bag.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(10)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("Empty bag should have no errors or warnings")
	}

	bag.Add(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("Info-only bag should have no errors or warnings")
	}

	bag.Add(New(SevWarning, BrkInfo, source.At(0, 3), "watch out"))
	if bag.HasErrors() {
		t.Error("Warning should not count as error")
	}
	if !bag.HasWarnings() {
		t.Error("Expected HasWarnings after warning")
	}

	bag.Add(NewError(BrkUnclosedOpen, source.At(0, 5), "unclosed"))
	if !bag.HasErrors() {
		t.Error("Expected HasErrors after error")
	}
}

func TestBagSortOrdersByPosition(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(BrkUnclosedOpen, source.At(0, 9), "later"))
	bag.Add(NewError(BrkUnmatchedClose, source.At(0, 1), "earlier"))
	bag.Add(NewError(BrkMismatched, source.Span{File: 0, Start: 1, End: 3}, "wider"))

	bag.Sort()
	items := bag.Items()
	if items[0].Message != "earlier" {
		t.Errorf("Expected position order, got %q first", items[0].Message)
	}
	if items[1].Message != "wider" {
		t.Errorf("Expected narrower span before wider, got %q second", items[1].Message)
	}
	if items[2].Message != "later" {
		t.Errorf("Expected %q last, got %q", "later", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	span := source.At(0, 4)
	bag.Add(NewError(BrkUnmatchedClose, span, "dup"))
	bag.Add(NewError(BrkUnmatchedClose, span, "dup"))
	bag.Add(NewError(BrkUnclosedOpen, span, "kept"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestBagMergeGrowsCapacity(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(BrkUnclosedOpen, source.At(0, 0), "a"))

	b := NewBag(1)
	b.Add(NewError(BrkUnmatchedClose, source.At(0, 1), "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("Expected merged length 2, got %d", a.Len())
	}
	if a.Cap() < 2 {
		t.Errorf("Expected capacity to grow to fit merge, got %d", a.Cap())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := []struct {
		code Code
		id   string
	}{
		{BrkUnmatchedClose, "BRK1001"},
		{BrkMismatched, "BRK1002"},
		{BrkUnclosedOpen, "BRK1003"},
		{BrkOddBacktickCount, "BRK1004"},
		{IOLoadFileError, "IO4001"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, c := range cases {
		if got := c.code.ID(); got != c.id {
			t.Errorf("Code %d: expected ID %q, got %q", c.code, c.id, got)
		}
	}
}
