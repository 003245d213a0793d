package parallel

import (
	"math"
	"testing"
)

func TestParseCPUMax(t *testing.T) {
	tests := []struct {
		in     string
		quota  int64
		period int64
		ok     bool
	}{
		{"250000 100000", 250000, 100000, true},
		{"250000 100000\n", 250000, 100000, true},
		{"  250000\t100000  ", 250000, 100000, true},
		{"max 100000", 0, 0, false},
		{"max 100000\n", 0, 0, false},
		{"", 0, 0, false},
		{"100000", 0, 0, false},
		{"1 2 3", 0, 0, false},
		{"x 100000", 0, 0, false},
		{"100000 y", 0, 0, false},
		{"0 100000", 0, 0, false},
		{"-1 100000", 0, 0, false},
		{"100000 0", 0, 0, false},
		{"100000 -7", 0, 0, false},
		{"9223372036854775807 1", math.MaxInt64, 1, true},
	}
	for _, tt := range tests {
		q, ok := parseCPUMax(tt.in)
		if ok != tt.ok {
			t.Errorf("parseCPUMax(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (q.quotaMicros != tt.quota || q.periodMicros != tt.period) {
			t.Errorf("parseCPUMax(%q) = {%d %d}, want {%d %d}",
				tt.in, q.quotaMicros, q.periodMicros, tt.quota, tt.period)
		}
	}
}

func TestQuotaCPUs(t *testing.T) {
	tests := []struct {
		name          string
		quota, period int64
		want          int
	}{
		{"half cpu clamps to one", 50000, 100000, 1},
		{"exactly one", 100000, 100000, 1},
		{"one and a half rounds up", 150000, 100000, 2},
		{"two and a half rounds up", 250000, 100000, 3},
		{"eight exact", 800000, 100000, 8},
		{"odd period", 100000, 30000, 4}, // 3.33 cpus
		{"no wrap at int64 extremes", math.MaxInt64, 1, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := quotaInfo{quotaMicros: tt.quota, periodMicros: tt.period}
			if got := q.cpus(); got != tt.want {
				t.Errorf("cpus() = %d, want %d", got, tt.want)
			}
		})
	}
}
