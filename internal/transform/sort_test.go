package transform

import (
	"testing"

	"github.com/pfrederiksen/event-extractor/internal/event"
)

func TestSort(t *testing.T) {
	events := []*event.Event{
		{ID: "paid-early", Title: "beta", StartDate: sp("2026-03-05"), StartTime: sp("09:00")},
		{ID: "free-late", Title: "Alpha", StartDate: sp("2026-04-01"), IsFree: true},
		{ID: "undated", Title: "gamma"},
		{ID: "paid-early-later-time", Title: "Delta", StartDate: sp("2026-03-05"), StartTime: sp("18:00")},
		{ID: "paid-early-no-time", Title: "epsilon", StartDate: sp("2026-03-05")},
	}

	tests := []struct {
		name string
		opts SortOptions
		want []string
	}{
		{
			name: "by date",
			opts: SortOptions{By: SortByDate},
			want: []string{"paid-early", "paid-early-later-time", "paid-early-no-time", "free-late", "undated"},
		},
		{
			name: "by date free first",
			opts: SortOptions{By: SortByDate, FreeFirst: true},
			want: []string{"free-late", "paid-early", "paid-early-later-time", "paid-early-no-time", "undated"},
		},
		{
			name: "by title case insensitive",
			opts: SortOptions{By: SortByTitle},
			want: []string{"free-late", "paid-early", "paid-early-later-time", "paid-early-no-time", "undated"},
		},
		{
			name: "empty key means date",
			opts: SortOptions{},
			want: []string{"paid-early", "paid-early-later-time", "paid-early-no-time", "free-late", "undated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Sort(events, tt.opts))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Sort() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSort_StableAndNonMutating(t *testing.T) {
	events := []*event.Event{
		{ID: "b", StartDate: sp("2026-03-05")},
		{ID: "a", StartDate: sp("2026-03-05")},
		{ID: "c", StartDate: sp("2026-03-01")},
	}

	got := ids(Sort(events, SortOptions{By: SortByDate}))
	want := []string{"c", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort() = %v, want %v", got, want)
		}
	}

	if events[0].ID != "b" || events[2].ID != "c" {
		t.Errorf("Sort() reordered its input: %v", ids(events))
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"date", SortByDate, false},
		{"", SortByDate, false},
		{"Title", SortByTitle, false},
		{"price", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
