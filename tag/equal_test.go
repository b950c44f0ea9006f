package tag

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)

	tests := []struct {
		name string
		a, b Tag
		want bool
	}{
		{"same scalar", NewInt("x", 1), NewInt("x", 1), true},
		{"different value", NewInt("x", 1), NewInt("x", 2), false},
		{"different name", NewInt("x", 1), NewInt("y", 1), false},
		{"signed vs unsigned", NewInt("x", 1), NewUInt("x", 1), false},
		{"nan", NewDouble("d", nan), NewDouble("d", nan), true},
		{"signed zero", NewDouble("d", 0), NewDouble("d", math.Copysign(0, -1)), false},
		{"nil arrays", NewIntArray("a", nil), NewIntArray("a", []int32{}), true},
		{
			"compound order",
			NewCompound("c", NewInt("a", 1), NewInt("b", 2)),
			NewCompound("c", NewInt("b", 2), NewInt("a", 1)),
			true,
		},
		{
			"compound extra child",
			NewCompound("c", NewInt("a", 1)),
			NewCompound("c", NewInt("a", 1), NewInt("b", 2)),
			false,
		},
		{
			"list order",
			mustList(t, "l", NewInt("", 1), NewInt("", 2)),
			mustList(t, "l", NewInt("", 2), NewInt("", 1)),
			false,
		},
		{"both nil", nil, nil, true},
		{"one nil", NewInt("x", 1), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}
