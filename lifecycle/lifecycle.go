package lifecycle

// Status is the order lifecycle state stored on the order document.
type Status string

const (
	StatusReceived       Status = "RECEIVED"
	StatusCutting        Status = "CUTTING"
	StatusPacking        Status = "PACKING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"

	// StatusCancelled is terminal and only ever written by the customer
	// facing app, never by the dashboard.
	StatusCancelled Status = "CANCELLED"

	// legacyPending is the lowercase status older order documents carry.
	legacyPending Status = "pending"
)

// Flow is the forward-only path an order moves through. CANCELLED sits
// outside it.
var Flow = []Status{
	StatusReceived,
	StatusCutting,
	StatusPacking,
	StatusOutForDelivery,
	StatusDelivered,
}

// Normalize maps a raw stored status onto the flow: missing statuses and the
// legacy pending alias both mean RECEIVED.
func Normalize(s Status) Status {
	if s == "" || s == legacyPending {
		return StatusReceived
	}
	return s
}

// Next returns the successor of s in the flow. ok is false for DELIVERED,
// CANCELLED and any status not present in the flow; unknown values never
// panic, they are simply not advanceable.
func Next(s Status) (Status, bool) {
	s = Normalize(s)
	for i, st := range Flow {
		if st == s {
			if i == len(Flow)-1 {
				return s, false
			}
			return Flow[i+1], true
		}
	}
	return s, false
}

// IsTerminal reports whether no operation may advance past s.
func IsTerminal(s Status) bool {
	s = Normalize(s)
	return s == StatusDelivered || s == StatusCancelled
}

// IsPending reports whether an order still counts toward the pending metric.
func IsPending(s Status) bool {
	return Normalize(s) == StatusReceived
}

// Label is the human readable form used by list views and exports.
func Label(s Status) string {
	switch Normalize(s) {
	case StatusReceived:
		return "Received"
	case StatusCutting:
		return "Cutting"
	case StatusPacking:
		return "Packing"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
