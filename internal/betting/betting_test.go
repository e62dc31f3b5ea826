package betting

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		tc   float64
		want string
	}{
		{-3, "1"},
		{0, "1"},
		{1, "1.5"},
		{2, "2"},
		{4, "2.5"},
		{6, "3"},
	}
	for _, tt := range tests {
		got := Multiplier(tt.tc)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Multiplier(%f) = %s, want %s", tt.tc, got, tt.want)
		}
	}
}

func TestRecommended(t *testing.T) {
	unit := decimal.RequireFromString("25")
	got := Recommended(unit, 1)
	if !got.Equal(decimal.RequireFromString("37.5")) {
		t.Errorf("Recommended(25, 1) = %s, want 37.5", got)
	}
	got = Recommended(unit, -2)
	if !got.Equal(unit) {
		t.Errorf("negative counts must stay at the unit bet, got %s", got)
	}
}
