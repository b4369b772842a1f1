package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const eps = 1e-9

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b orb.Point
		want float64
	}{
		{Pt(0, 0), Pt(3, 4), 5},
		{Pt(100, 100), Pt(100, 100), 0},
		{Pt(-1, -1), Pt(2, 3), 5},
	}
	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); math.Abs(got-tc.want) > eps {
			t.Errorf("Distance(%v, %v) = %f, want %f", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAngleTo(t *testing.T) {
	tests := []struct {
		name    string
		from    orb.Point
		heading float64
		to      orb.Point
		want    float64
	}{
		{"dead ahead", Pt(0, 0), 0, Pt(10, 0), 0},
		{"left quarter", Pt(0, 0), 0, Pt(0, 10), math.Pi / 2},
		{"right quarter", Pt(0, 0), 0, Pt(0, -10), -math.Pi / 2},
		{"behind", Pt(0, 0), 0, Pt(-10, 0), math.Pi},
		{"heading already aligned", Pt(5, 5), math.Pi / 2, Pt(5, 50), 0},
		{"wraps across pi", Pt(0, 0), 3 * math.Pi / 4, Pt(0, -10), math.Pi * 3 / 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AngleTo(tc.from, tc.heading, tc.to)
			if math.Abs(got-tc.want) > eps {
				t.Errorf("AngleTo = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{5 * math.Pi / 2, math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.want) > eps {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tc.in, got, tc.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeAngle(%f) = %f, outside (-pi, pi]", tc.in, got)
		}
	}
}

func TestFinite(t *testing.T) {
	if !Finite(Pt(1, 2)) {
		t.Error("expected finite point")
	}
	if Finite(Pt(math.NaN(), 2)) {
		t.Error("NaN x should not be finite")
	}
	if Finite(Pt(1, math.Inf(-1))) {
		t.Error("-Inf y should not be finite")
	}
}
