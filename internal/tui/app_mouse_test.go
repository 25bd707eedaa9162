package tui

import (
	"testing"

	"github.com/stash-cli/stash/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < len(components.Tabs); active++ {
		a := App{activeTab: active}
		pos := 1 // leading space before the first tab

		for i := range components.Tabs {
			w := components.TabWidth(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 2 // separator
		}
	}
}

func TestTabAtXOutsideBar(t *testing.T) {
	a := App{}
	if got := a.tabAtX(0); got != -1 {
		t.Errorf("x=0 should miss every tab, got %d", got)
	}
	if got := a.tabAtX(10000); got != -1 {
		t.Errorf("far-right click should miss every tab, got %d", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := components.TabIdxByKey('v'); got != 1 {
		t.Errorf("key v -> %d, want 1", got)
	}
	if got := components.TabIdxByKey('z'); got != -1 {
		t.Errorf("unknown key -> %d, want -1", got)
	}
}
