package core

import "testing"

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{name: "empty", want: 1},
		{name: "single", ids: []int{1}, want: 2},
		{name: "gaps", ids: []int{1, 5, 3}, want: 6},
		{name: "max removed", ids: []int{1, 2}, want: 3},
		{name: "unordered", ids: []int{9, 2, 4}, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.ids...); got != tt.want {
				t.Errorf("NextID(%v) = %d; want %d", tt.ids, got, tt.want)
			}
		})
	}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		in    string
		lower bool
		want  string
	}{
		{in: "  Admin ", want: "Admin"},
		{in: "  Admin ", lower: true, want: "admin"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := CleanString(tt.in, tt.lower); got != tt.want {
			t.Errorf("CleanString(%q, %v) = %q; want %q", tt.in, tt.lower, got, tt.want)
		}
	}
}
