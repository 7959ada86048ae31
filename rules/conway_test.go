package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConwayRules(t *testing.T) {
	for neighbors := 0; neighbors <= 8; neighbors++ {
		assert.Equal(t, neighbors == 2 || neighbors == 3, ApplyConwayRules(neighbors, true), "alive with %d", neighbors)
		assert.Equal(t, neighbors == 3, ApplyConwayRules(neighbors, false), "dead with %d", neighbors)
	}
}

func TestShouldSwitch(t *testing.T) {
	cases := []struct {
		alive     bool
		neighbors int
		want      bool
	}{
		{true, 0, true},
		{true, 1, true},
		{true, 2, false},
		{true, 3, false},
		{true, 4, true},
		{true, 8, true},
		{false, 0, false},
		{false, 2, false},
		{false, 3, true},
		{false, 4, false},
		{false, 8, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldSwitch(tc.alive, tc.neighbors), "alive=%v neighbors=%d", tc.alive, tc.neighbors)
	}
}
