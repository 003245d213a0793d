package sizer

import "testing"

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		avail int
		opts  Options
		want  int
	}{
		{"defaults to available", 8, Options{}, 8},
		{"absolute override", 8, Options{Workers: "4"}, 4},
		{"absolute above available is honored", 4, Options{Workers: "16"}, 16},
		{"percentage", 8, Options{Workers: "50%"}, 4},
		{"percentage floors", 5, Options{Workers: "50%"}, 2},
		{"percentage minimum one", 1, Options{Workers: "10%"}, 1},
		{"percentage over hundred", 4, Options{Workers: "200%"}, 8},
		{"in band forces one", 8, Options{InBand: true}, 1},
		{"in band beats absolute", 8, Options{Workers: "4", InBand: true}, 1},
		{"in band beats watch", 8, Options{Watch: true, InBand: true}, 1},
		{"watch halves", 8, Options{Watch: true}, 4},
		{"watch floors", 3, Options{Watch: true}, 1},
		{"watch minimum one", 1, Options{Watch: true}, 1},
		{"absolute skips watch halving", 8, Options{Workers: "4", Watch: true}, 4},
		{"percentage then watch keeps percentage", 8, Options{Workers: "50%", Watch: true}, 4},
		{"garbage override ignored", 8, Options{Workers: "lots"}, 8},
		{"zero override ignored", 8, Options{Workers: "0"}, 8},
		{"negative override ignored", 8, Options{Workers: "-2"}, 8},
		{"zero percent ignored", 8, Options{Workers: "0%"}, 8},
		{"zero available treated as one", 0, Options{}, 1},
		{"negative available treated as one", -3, Options{Watch: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.avail, tt.opts); got != tt.want {
				t.Errorf("Count(%d, %+v) = %d, want %d", tt.avail, tt.opts, got, tt.want)
			}
		})
	}
}
