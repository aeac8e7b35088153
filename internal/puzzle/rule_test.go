package puzzle

import (
	"errors"
	"testing"
)

func TestDiagonalMirrorPartners(t *testing.T) {
	tests := []struct {
		p, want Pos
	}{
		{Pos{0, 0}, Pos{3, 3}},
		{Pos{1, 2}, Pos{2, 1}},
		{Pos{3, 0}, Pos{0, 3}},
	}

	for _, tc := range tests {
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				q := Pos{row, col}
				got := Paired(DiagonalMirror{}, tc.p, q, 4)
				if got != (q == tc.want) {
					t.Errorf("diagonal: Paired(%v, %v) = %v", tc.p, q, got)
				}
			}
		}
	}
}

func TestVerticalMirrorPartners(t *testing.T) {
	tests := []struct {
		p, want Pos
	}{
		{Pos{1, 0}, Pos{1, 3}},
		{Pos{0, 1}, Pos{0, 2}},
		{Pos{3, 3}, Pos{3, 0}},
	}

	for _, tc := range tests {
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				q := Pos{row, col}
				got := Paired(VerticalMirror{}, tc.p, q, 4)
				if got != (q == tc.want) {
					t.Errorf("vertical: Paired(%v, %v) = %v", tc.p, q, got)
				}
			}
		}
	}
}

func TestPairingIsSymmetric(t *testing.T) {
	for _, rule := range []Rule{DiagonalMirror{}, VerticalMirror{}} {
		for _, n := range []int{2, 3, 4, 5, 6} {
			for a := 0; a < n*n; a++ {
				for b := 0; b < n*n; b++ {
					pa := Pos{a / n, a % n}
					pb := Pos{b / n, b % n}
					if Paired(rule, pa, pb, n) != Paired(rule, pb, pa, n) {
						t.Errorf("%s n=%d: Paired(%v,%v) is not symmetric", rule.Name(), n, pa, pb)
					}
				}
			}
		}
	}
}

func TestSelfPartnerNeverPairs(t *testing.T) {
	// The centre of an odd diagonal grid is its own mirror.
	centre := Pos{2, 2}
	if (DiagonalMirror{}).Partner(centre, 5) != centre {
		t.Fatal("centre should mirror onto itself")
	}
	if Paired(DiagonalMirror{}, centre, centre, 5) {
		t.Error("a position must not pair with itself")
	}
}

func TestPairs(t *testing.T) {
	tests := []struct {
		rule Rule
		n    int
		want int
	}{
		{DiagonalMirror{}, 4, 8},
		{VerticalMirror{}, 4, 8},
		{DiagonalMirror{}, 6, 18},
		{DiagonalMirror{}, 5, 12},
		{VerticalMirror{}, 5, 10},
	}

	for _, tc := range tests {
		pairs := Pairs(tc.rule, tc.n)
		if len(pairs) != tc.want {
			t.Errorf("%s n=%d: %d pairs, want %d", tc.rule.Name(), tc.n, len(pairs), tc.want)
		}
		seen := map[Pos]bool{}
		for _, p := range pairs {
			if !Paired(tc.rule, p[0], p[1], tc.n) {
				t.Errorf("%s n=%d: %v is not a pair", tc.rule.Name(), tc.n, p)
			}
			if seen[p[0]] || seen[p[1]] {
				t.Errorf("%s n=%d: position listed twice in %v", tc.rule.Name(), tc.n, p)
			}
			seen[p[0]], seen[p[1]] = true, true
		}
	}

	first := Pairs(DiagonalMirror{}, 4)[0]
	if first != [2]Pos{{0, 0}, {3, 3}} {
		t.Errorf("first diagonal pair = %v, want [[0,0] [3,3]]", first)
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "diagonal", false},
		{"diagonal", "diagonal", false},
		{" Vertical ", "vertical", false},
		{"spiral", "", true},
	}

	for _, tc := range tests {
		r, err := ParseRule(tc.name)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownRule) {
				t.Errorf("ParseRule(%q) error = %v, want ErrUnknownRule", tc.name, err)
			}
			continue
		}
		if err != nil || r.Name() != tc.want {
			t.Errorf("ParseRule(%q) = %v, %v; want %s", tc.name, r, err, tc.want)
		}
	}
}
