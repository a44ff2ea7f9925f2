package core

import "testing"

func TestHeadingUnit(t *testing.T) {
	tests := []struct {
		name     string
		h        Heading
		expected Cell
	}{
		{"up", Up, Cell{X: 0, Y: -1}},
		{"down", Down, Cell{X: 0, Y: 1}},
		{"left", Left, Cell{X: -1, Y: 0}},
		{"right", Right, Cell{X: 1, Y: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.h.Unit(); got != tc.expected {
				t.Errorf("Unit() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestHeadingOpposite(t *testing.T) {
	pairs := []struct {
		a, b Heading
	}{
		{Up, Down},
		{Left, Right},
	}

	for _, p := range pairs {
		if p.a.Opposite() != p.b {
			t.Errorf("%v.Opposite() = %v, expected %v", p.a, p.a.Opposite(), p.b)
		}
		if p.b.Opposite() != p.a {
			t.Errorf("%v.Opposite() = %v, expected %v", p.b, p.b.Opposite(), p.a)
		}
	}
}

func TestHeadingRoundTrip(t *testing.T) {
	for _, h := range []Heading{Up, Down, Left, Right} {
		parsed, err := ParseHeading(h.String())
		if err != nil {
			t.Fatalf("ParseHeading(%q) returned error: %v", h.String(), err)
		}
		if parsed != h {
			t.Errorf("ParseHeading(%q) = %v, expected %v", h.String(), parsed, h)
		}
	}

	if _, err := ParseHeading("sideways"); err == nil {
		t.Error("ParseHeading accepted an unknown heading")
	}
}

func TestCellInside(t *testing.T) {
	tests := []struct {
		name     string
		c        Cell
		expected bool
	}{
		{"center", Cell{X: 5, Y: 5}, true},
		{"top-left corner", Cell{X: 0, Y: 0}, true},
		{"bottom-right corner", Cell{X: 9, Y: 9}, true},
		{"past right edge", Cell{X: 10, Y: 5}, false},
		{"past bottom edge", Cell{X: 5, Y: 10}, false},
		{"negative x", Cell{X: -1, Y: 5}, false},
		{"negative y", Cell{X: 5, Y: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Inside(10, 10); got != tc.expected {
				t.Errorf("Inside(10, 10) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
