package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryPoints(t *testing.T) {
	cases := []struct {
		name       string
		items      []creditItem
		wantPoints int
		wantKG     float64
	}{
		{
			"whole kilos",
			[]creditItem{{Quantity: 2, Unit: "KG"}, {Quantity: 1, Unit: "KG"}},
			3, 3,
		},
		{
			"fractional kilos truncate",
			[]creditItem{{Quantity: 1.5, Unit: "KG"}, {Quantity: 0.4, Unit: "KG"}},
			1, 1.9,
		},
		{
			"under one kilo earns nothing",
			[]creditItem{{Quantity: 0.5, Unit: "KG"}},
			0, 0.5,
		},
		{
			"non-kg units ignored",
			[]creditItem{{Quantity: 12, Unit: "PC"}, {Quantity: 2, Unit: "DOZEN"}},
			0, 0,
		},
		{
			"mixed units",
			[]creditItem{{Quantity: 2.5, Unit: "KG"}, {Quantity: 6, Unit: "PC"}},
			2, 2.5,
		},
		{
			"no items",
			nil,
			0, 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points, kg := deliveryPoints(tc.items)
			assert.Equal(t, tc.wantPoints, points)
			assert.InDelta(t, tc.wantKG, kg, 1e-9)
		})
	}
}
