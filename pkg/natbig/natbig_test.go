package natbig

import (
	"testing"
)

func mustArith(t *testing.T, radix int) *Arith {
	t.Helper()
	a, err := New(radix)
	if err != nil {
		t.Fatalf("New(%d): %v", radix, err)
	}
	return a
}

func mustParse(t *testing.T, a *Arith, s string) Nat {
	t.Helper()
	u, err := a.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return u
}

func TestNewRadix(t *testing.T) {
	for _, radix := range []int{10, 100, 1000, 10000} {
		if _, err := New(radix); err != nil {
			t.Errorf("New(%d): %v", radix, err)
		}
	}
	for _, radix := range []int{0, 1, 2, 16, 50, -10} {
		if _, err := New(radix); err == nil {
			t.Errorf("New(%d): expected error", radix)
		}
	}
}

func TestParseRender(t *testing.T) {
	tests := []struct {
		radix int
		in    string
		want  string
	}{
		{10, "0", "0"},
		{10, "7", "7"},
		{1000, "012340", "12340"},
		{1000, "1000000", "1000000"},
		{100, "999999999", "999999999"},
		{1000, "000", "0"},
	}

	for _, tt := range tests {
		a := mustArith(t, tt.radix)
		u := mustParse(t, a, tt.in)
		if got := a.Render(u); got != tt.want {
			t.Errorf("radix %d: Render(Parse(%q)) = %q, want %q", tt.radix, tt.in, got, tt.want)
		}
	}
}

func TestParseDigitGrouping(t *testing.T) {
	a := mustArith(t, 1000)
	u := mustParse(t, a, "012340")

	if u.Len() != 2 {
		t.Fatalf("digit count = %d, want 2", u.Len())
	}
	ds := u.Digits()
	if ds[0] != 340 || ds[1] != 12 {
		t.Errorf("digits = %v, want [340 12]", ds)
	}
}

func TestParseRejects(t *testing.T) {
	a := mustArith(t, 1000)
	for _, in := range []string{"", "12a4", "-5", "1.5", " 12"} {
		if _, err := a.Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestDebugRender(t *testing.T) {
	a := mustArith(t, 1000)
	u := mustParse(t, a, "5432017")
	if got := a.DebugRender(u); got != "#3||5|432|17" {
		t.Errorf("DebugRender = %q, want %q", got, "#3||5|432|17")
	}
	if got := a.DebugRender(a.Zero()); got != "#0|" {
		t.Errorf("DebugRender(0) = %q, want %q", got, "#0|")
	}
}

func TestCmp(t *testing.T) {
	a := mustArith(t, 100)
	tests := []struct {
		u, v string
		want int
	}{
		{"0", "0", 0},
		{"1", "0", 1},
		{"0", "1", -1},
		{"12345", "12345", 0},
		{"12345", "12346", -1},
		{"99", "100", -1},
		{"100", "99", 1},
	}
	for _, tt := range tests {
		if got := a.Cmp(mustParse(t, a, tt.u), mustParse(t, a, tt.v)); got != tt.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestAddSub(t *testing.T) {
	a := mustArith(t, 1000)
	tests := []struct {
		u, v, sum string
	}{
		{"0", "0", "0"},
		{"1", "999", "1000"},
		{"999999", "1", "1000000"},
		{"123456789", "987654321", "1111111110"},
		{"5", "0", "5"},
	}
	for _, tt := range tests {
		u, v := mustParse(t, a, tt.u), mustParse(t, a, tt.v)
		if got := a.Render(a.Add(u, v)); got != tt.sum {
			t.Errorf("%s + %s = %s, want %s", tt.u, tt.v, got, tt.sum)
		}
		// Commutativity
		if got := a.Render(a.Add(v, u)); got != tt.sum {
			t.Errorf("%s + %s = %s, want %s", tt.v, tt.u, got, tt.sum)
		}
		// sum - v = u
		if got := a.Render(a.Sub(a.Add(u, v), v)); got != a.Render(u) {
			t.Errorf("(%s + %s) - %s = %s, want %s", tt.u, tt.v, tt.v, got, tt.u)
		}
	}
}

func TestSubStripsHighZeros(t *testing.T) {
	a := mustArith(t, 10)
	u := mustParse(t, a, "1000")
	v := mustParse(t, a, "999")
	d := a.Sub(u, v)
	if d.Len() != 1 {
		t.Errorf("digit count = %d, want 1", d.Len())
	}
	if got := a.Render(d); got != "1" {
		t.Errorf("1000 - 999 = %s, want 1", got)
	}

	z := a.Sub(u, u)
	if !z.IsZero() || z.Len() != 0 {
		t.Errorf("u - u not canonical zero: len=%d", z.Len())
	}
}

func TestMul(t *testing.T) {
	a := mustArith(t, 1000)
	tests := []struct {
		u, v, want string
	}{
		{"0", "12345", "0"},
		{"1", "12345", "12345"},
		{"142857", "7", "999999"},
		{"123456789", "987654321", "121932631112635269"},
		{"99999", "99999", "9999800001"},
	}
	for _, tt := range tests {
		u, v := mustParse(t, a, tt.u), mustParse(t, a, tt.v)
		if got := a.Render(a.Mul(u, v)); got != tt.want {
			t.Errorf("%s * %s = %s, want %s", tt.u, tt.v, got, tt.want)
		}
		if got := a.Render(a.Mul(v, u)); got != tt.want {
			t.Errorf("%s * %s = %s, want %s", tt.v, tt.u, got, tt.want)
		}
	}
}

func TestShortDivMod(t *testing.T) {
	a := mustArith(t, 1000)
	tests := []struct {
		u string
		d int
		q string
		r int
	}{
		{"999999", 7, "142857", 0},
		{"1000000", 7, "142857", 1},
		{"5", 7, "0", 5},
		{"0", 3, "0", 0},
	}
	for _, tt := range tests {
		q, r := a.ShortDivMod(mustParse(t, a, tt.u), tt.d)
		if got := a.Render(q); got != tt.q || r != tt.r {
			t.Errorf("%s / %d = (%s, %d), want (%s, %d)", tt.u, tt.d, got, r, tt.q, tt.r)
		}
	}

	// u / 1 = (u, 0)
	u := mustParse(t, a, "987654321")
	q, r := a.ShortDivMod(u, 1)
	if a.Cmp(q, u) != 0 || r != 0 {
		t.Errorf("u / 1 = (%s, %d), want (u, 0)", a.Render(q), r)
	}
}

func TestDivMod(t *testing.T) {
	tests := []struct {
		radix int
		u, v  string
		q, r  string
	}{
		{10, "1000000", "7", "142857", "1"},
		{1000, "1000000", "7", "142857", "1"},
		{1000, "121932631112635269", "987654321", "123456789", "0"},
		{1000, "5", "1000000", "0", "5"},
		{100, "99999999", "10001", "9999", "0"},
		{10, "8765432109876543210", "123456789", "71000000736", "12346506"},
		{1000, "999999999999", "999999", "1000001", "0"},
	}

	for _, tt := range tests {
		a := mustArith(t, tt.radix)
		u, v := mustParse(t, a, tt.u), mustParse(t, a, tt.v)
		q, r := a.DivMod(u, v)
		if got := a.Render(q); got != tt.q {
			t.Errorf("radix %d: %s / %s: q = %s, want %s", tt.radix, tt.u, tt.v, got, tt.q)
		}
		if got := a.Render(r); got != tt.r {
			t.Errorf("radix %d: %s / %s: r = %s, want %s", tt.radix, tt.u, tt.v, got, tt.r)
		}

		// u = q*v + r, and r < v
		back := a.Add(a.Mul(q, v), r)
		if a.Cmp(back, u) != 0 {
			t.Errorf("radix %d: q*v + r = %s, want %s", tt.radix, a.Render(back), tt.u)
		}
		if a.Cmp(r, v) >= 0 {
			t.Errorf("radix %d: remainder %s not below divisor %s", tt.radix, tt.r, tt.v)
		}
	}
}

func TestRadixShift(t *testing.T) {
	a := mustArith(t, 1000)
	u := mustParse(t, a, "42")
	if got := a.Render(a.RadixShift(u, 2)); got != "42000000" {
		t.Errorf("RadixShift(42, 2) = %s, want 42000000", got)
	}
	if !a.RadixShift(a.Zero(), 3).IsZero() {
		t.Error("RadixShift(0, 3) should stay zero")
	}
}

func TestGCD(t *testing.T) {
	a := mustArith(t, 1000)
	tests := []struct {
		u, v, want string
	}{
		{"12", "18", "6"},
		{"18", "12", "6"},
		{"17", "5", "1"},
		{"12345", "0", "12345"},
		{"0", "12345", "12345"},
		{"123456789123456789", "987654321987654321", "9000000009"},
	}
	for _, tt := range tests {
		u, v := mustParse(t, a, tt.u), mustParse(t, a, tt.v)
		g := a.GCD(u, v)
		if got := a.Render(g); got != tt.want {
			t.Errorf("GCD(%s, %s) = %s, want %s", tt.u, tt.v, got, tt.want)
		}
		if !g.IsZero() {
			if !a.Mod(u, g).IsZero() && !u.IsZero() {
				t.Errorf("GCD(%s, %s) does not divide %s", tt.u, tt.v, tt.u)
			}
			if !a.Mod(v, g).IsZero() && !v.IsZero() {
				t.Errorf("GCD(%s, %s) does not divide %s", tt.u, tt.v, tt.v)
			}
		}
	}
}

func TestFromDigits(t *testing.T) {
	a := mustArith(t, 1000)
	u, err := a.FromDigits([]int{340, 12, 0})
	if err != nil {
		t.Fatalf("FromDigits: %v", err)
	}
	if u.Len() != 2 || a.Render(u) != "12340" {
		t.Errorf("FromDigits = %s (len %d), want 12340 (len 2)", a.Render(u), u.Len())
	}
	if _, err := a.FromDigits([]int{1000}); err == nil {
		t.Error("FromDigits with out-of-range digit: expected error")
	}
}
