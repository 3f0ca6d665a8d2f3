package domain

// Order Statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// List Exports for API
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// orderStatusWeights define forward-only progress. A status may only move
// to a status of equal or greater weight; cancelled is terminal.
var orderStatusWeights = map[string]int{
	OrderStatusPending:    10,
	OrderStatusProcessing: 20,
	OrderStatusShipped:    30,
	OrderStatusDelivered:  40,
	OrderStatusCancelled:  50,
}

// ValidStatusTransition reports whether an order may move from to next.
func ValidStatusTransition(from, next string) bool {
	fromW, okFrom := orderStatusWeights[from]
	nextW, okNext := orderStatusWeights[next]
	if !okFrom || !okNext {
		return false
	}
	if from == OrderStatusCancelled || from == OrderStatusDelivered {
		return false
	}
	return nextW >= fromW
}
