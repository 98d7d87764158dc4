package events

// Topic constants for domain events emitted by the shop.
const (
	TopicOrderPaid       = "order.paid"
	TopicPaymentFailed   = "payment.failed"
	TopicShipmentShipped = "shipment.shipped"
	TopicItemUpserted    = "catalog.item_upserted"
	TopicItemRemoved     = "catalog.item_removed"
)

// DefaultTopics returns the canonical list of topics.
func DefaultTopics() []string {
	return []string{
		TopicOrderPaid,
		TopicPaymentFailed,
		TopicShipmentShipped,
		TopicItemUpserted,
		TopicItemRemoved,
	}
}
