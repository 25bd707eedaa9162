package components

import (
	"strings"
	"testing"

	"github.com/stash-cli/stash/internal/tui/theme"
)

func TestFormatChartLabel(t *testing.T) {
	theme.SetActive("flexoki-dark")

	cases := []struct {
		v    float64
		unit string
		want string
	}{
		{50, "%", "50%"},
		{120, "%", "120%"},
		{1500, "$", "1.5k$"},
		{2000000, "", "2M"},
		{0.5, "", "0.50"},
	}
	for _, c := range cases {
		if got := formatChartLabel(c.v, c.unit); got != c.want {
			t.Errorf("formatChartLabel(%v, %q) = %q, want %q", c.v, c.unit, got, c.want)
		}
	}
}

func TestBarChartTickLabelsCarryUnit(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := BarChart([]float64{30, 90}, []string{"a", "b"}, theme.Active.Blue, 40, 8, "%")
	if !strings.Contains(out, "80%") {
		t.Errorf("chart axis missing percentage tick label:\n%s", out)
	}
}
