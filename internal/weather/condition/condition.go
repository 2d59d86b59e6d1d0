// Package condition maps OpenWeatherMap condition codes to display glyphs.
package condition

import "sort"

const (
	Thunderstorm = "🌩️"
	Drizzle      = "🌦️"
	Rain         = "🌧️"
	Snow         = "❄️"
	Atmosphere   = "🌫️"
	Clear        = "☀️"
	Clouds       = "⛅"
	Unknown      = "❓"
)

type interval struct {
	lo, hi int // [lo, hi)
	glyph  string
}

// table is sorted by lo and non-overlapping. Codes in [400,500) and >= 900
// fall outside every interval and resolve to Unknown.
var table = [...]interval{
	{200, 300, Thunderstorm},
	{300, 400, Drizzle},
	{500, 600, Rain},
	{600, 700, Snow},
	{700, 800, Atmosphere},
	{800, 801, Clear},
	{801, 900, Clouds},
}

// Emoji returns the glyph for a condition code. It is total: unmapped codes yield Unknown.
func Emoji(code int) string {
	i := sort.Search(len(table), func(i int) bool { return table[i].hi > code })
	if i < len(table) && table[i].lo <= code {
		return table[i].glyph
	}
	return Unknown
}

// Glyphs lists every glyph Emoji can return.
func Glyphs() []string {
	out := make([]string, 0, len(table)+1)
	for _, iv := range table {
		out = append(out, iv.glyph)
	}
	return append(out, Unknown)
}

// KelvinToFahrenheit converts an OpenWeatherMap temperature (Kelvin) to °F.
func KelvinToFahrenheit(k float64) float64 {
	return (k-273.15)*9/5 + 32
}
