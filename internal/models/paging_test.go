package models

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"valid", 2, 25, 2, 25},
		{"zero page clamps to 1", 0, 25, 1, 25},
		{"negative page clamps to 1", -3, 25, 1, 25},
		{"zero limit clamps to min", 1, 0, 1, MinPageSize},
		{"negative limit clamps to min", 1, -5, 1, MinPageSize},
		{"huge limit clamps to max", 1, 10000, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.page, tt.limit)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("NewPage(%d, %d) = %+v, want page=%d limit=%d",
					tt.page, tt.limit, got, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	p := NewPage(3, 25)
	if got := p.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
	if got := NewPage(1, 25).Offset(); got != 0 {
		t.Errorf("Offset() = %d, want 0", got)
	}
}

func TestPagePages(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		total int
		want  int
	}{
		{"exact multiple", 10, 30, 3},
		{"partial last page", 10, 31, 4},
		{"single page", 10, 5, 1},
		{"empty", 10, 0, 0},
		{"negative total", 10, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(1, tt.limit)
			if got := p.Pages(tt.total); got != tt.want {
				t.Errorf("Pages(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}
