package condition

import (
	"math"
	"testing"
)

func TestEmoji_Ranges(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{199, Unknown},
		{200, Thunderstorm},
		{232, Thunderstorm},
		{299, Thunderstorm},
		{300, Drizzle},
		{321, Drizzle},
		{399, Drizzle},
		{400, Unknown},
		{450, Unknown},
		{499, Unknown},
		{500, Rain},
		{531, Rain},
		{600, Snow},
		{622, Snow},
		{700, Atmosphere},
		{741, Atmosphere},
		{799, Atmosphere},
		{800, Clear},
		{801, Clouds},
		{804, Clouds},
		{899, Clouds},
		{900, Unknown},
		{999, Unknown},
		{0, Unknown},
		{-1, Unknown},
	}
	for _, tc := range cases {
		if got := Emoji(tc.code); got != tc.want {
			t.Errorf("Emoji(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestEmoji_TotalAndDeterministic(t *testing.T) {
	valid := make(map[string]bool)
	for _, g := range Glyphs() {
		valid[g] = true
	}
	if len(valid) != 8 {
		t.Fatalf("Glyphs() has %d distinct glyphs, want 8", len(valid))
	}
	for code := -100; code < 1200; code++ {
		got := Emoji(code)
		if !valid[got] {
			t.Fatalf("Emoji(%d) = %q, not a known glyph", code, got)
		}
		if again := Emoji(code); again != got {
			t.Fatalf("Emoji(%d) not deterministic: %q then %q", code, got, again)
		}
	}
}

func TestKelvinToFahrenheit(t *testing.T) {
	cases := []struct {
		k, want float64
	}{
		{273.15, 32},
		{373.15, 212},
		{300, 80.33},
		{0, -459.67},
	}
	for _, tc := range cases {
		got := KelvinToFahrenheit(tc.k)
		if math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("KelvinToFahrenheit(%v) = %v, want %v", tc.k, got, tc.want)
		}
	}
	if got := KelvinToFahrenheit(273.15); got != 32 {
		t.Errorf("KelvinToFahrenheit(273.15) = %v, want exactly 32", got)
	}
}
