package services

import (
	"slices"
	"testing"
)

func TestBestWindow(t *testing.T) {
	tests := []struct {
		name     string
		indices  []int
		count    int
		want     []int
		wantSpan int
		wantOK   bool
	}{
		{name: "tightest cluster", indices: []int{0, 1, 5, 6, 7}, count: 3, want: []int{5, 6, 7}, wantSpan: 2, wantOK: true},
		{name: "earliest wins ties", indices: []int{0, 1, 3, 4}, count: 2, want: []int{0, 1}, wantSpan: 1, wantOK: true},
		{name: "gaps allowed", indices: []int{0, 4, 9}, count: 2, want: []int{0, 4}, wantSpan: 4, wantOK: true},
		{name: "whole list", indices: []int{2, 8}, count: 2, want: []int{2, 8}, wantSpan: 6, wantOK: true},
		{name: "single", indices: []int{3, 6}, count: 1, want: []int{3}, wantSpan: 0, wantOK: true},
		{name: "too few", indices: []int{0, 2}, count: 3, wantOK: false},
		{name: "zero count", indices: []int{0, 2}, count: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, span, ok := BestWindow(tt.indices, tt.count)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("window = %v, want %v", got, tt.want)
			}
			if span != tt.wantSpan {
				t.Fatalf("span = %d, want %d", span, tt.wantSpan)
			}
		})
	}
}

func TestBestWindowDoesNotAliasInput(t *testing.T) {
	in := []int{1, 2, 3}
	got, _, _ := BestWindow(in, 2)
	got[0] = 99
	if in[0] != 1 {
		t.Fatalf("input modified: %v", in)
	}
}
