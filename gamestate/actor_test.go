package gamestate

import (
	"math"
	"testing"
	"time"
)

func approxEq(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestActorRotateWraps(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		sign    float64
		dt      time.Duration
		heading float64
	}{
		{"no turn", 10, 1, 0, 10},
		{"across 360", 350, 1, time.Second / 6, 10},
		{"across 0", 10, -1, time.Second / 6, 350},
		{"full circle", 0, 1, 3 * time.Second, 0},
		{"many turns left", 0, -1, 100 * time.Second, 240},
		{"many turns right", 45, 1, 3000 * time.Second, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewActor(0, 0, 90, 100)
			a.SetHeading(tt.start)
			a.Rotate(tt.sign, tt.dt)
			h := a.Heading()
			if h < 0 || h >= 360 {
				t.Fatalf("heading %v outside [0, 360)", h)
			}
			if angleDiff(h, tt.heading) > 1e-6 {
				t.Fatalf("expected heading %v, got %v", tt.heading, h)
			}
		})
	}
}

// angleDiff returns the unsigned difference between two angles in degrees.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}

func TestNormalizeHeading(t *testing.T) {
	for _, tt := range []struct{ in, out float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-725, 355},
		{-1e-17, 0},
	} {
		if got := normalizeHeading(tt.in); !approxEq(got, tt.out, 1e-9) {
			t.Fatalf("normalizeHeading(%v) = %v, want %v", tt.in, got, tt.out)
		}
	}
}

func TestActorMoveFollowsHeading(t *testing.T) {
	tests := []struct {
		heading float64
		sign    float64
		x, y    float64
	}{
		{0, 1, 150, 0},
		{0, -1, -150, 0},
		{90, 1, 0, 150},
		{180, 1, -150, 0},
		{270, 1, 0, -150},
	}
	for _, tt := range tests {
		a := NewActor(0, 0, 90, 100)
		a.SetHeading(tt.heading)
		a.Move(tt.sign, time.Second)
		p := a.Position()
		if !approxEq(p.X(), tt.x, 1e-9) || !approxEq(p.Y(), tt.y, 1e-9) {
			t.Fatalf("heading %v sign %v: expected (%v, %v), got %v", tt.heading, tt.sign, tt.x, tt.y, p)
		}
	}
}

func TestActorSetPosition(t *testing.T) {
	a := NewActor(1, 2, 90, 100)
	a.SetPosition(3, 4)
	if p := a.Position(); p.X() != 3 || p.Y() != 4 {
		t.Fatalf("expected (3, 4), got %v", p)
	}
	if a.FieldOfView() != 90 || a.ViewDistance() != 100 {
		t.Fatalf("view cone changed by SetPosition")
	}
}
