package main

import (
	"testing"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		arg  string
		key  string
		want []float64
		err  bool
	}{
		{"k=1:3:3", "k", []float64{1, 2, 3}, false},
		{"rest=2,4.5", "rest", []float64{2, 4.5}, false},
		{"mass=7", "mass", []float64{7}, false},
		{"k", "", nil, true},
		{"k=1:x:3", "", nil, true},
		{"k=a,b", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			key, got, err := parseGrid(tt.arg)
			if (err != nil) != tt.err {
				t.Fatalf("err = %v, want error %v", err, tt.err)
			}
			if tt.err {
				return
			}
			if key != tt.key || len(got) != len(tt.want) {
				t.Fatalf("got %s=%v, want %s=%v", key, got, tt.key, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("value %d = %g, want %g", i, got[i], tt.want[i])
				}
			}
		})
	}
}
