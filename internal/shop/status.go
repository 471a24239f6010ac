package shop

import "fmt"

// OrderStatuses is the fixed status vocabulary. Any status may move to any
// other; there is no transition graph.
var OrderStatuses = []string{
	"pending",
	"confirmed",
	"processing",
	"ready_for_pickup",
	"out_for_delivery",
	"delivered",
	"completed",
	"cancelled",
	"refunded",
}

// IsValidStatus reports whether status belongs to the vocabulary.
func IsValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderNumber derives the human-readable order number from the order's
// primary key, e.g. ORD-00042.
func OrderNumber(orderID uint) string {
	return fmt.Sprintf("ORD-%05d", orderID)
}
