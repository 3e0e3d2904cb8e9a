package avro

// OrderPlacedSchema is the value schema of the order-placed topic. Amounts
// travel as decimal strings ("12.50") so no precision is lost.
const OrderPlacedSchema = `{
	"type": "record",
	"name": "OrderPlaced",
	"namespace": "farmdirect.order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "buyer_id", "type": "string"},
		{"name": "total_amount", "type": "string"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderLine",
				"fields": [
					{"name": "product_id", "type": ["null", "string"], "default": null},
					{"name": "product_name", "type": "string"},
					{"name": "seller_id", "type": "string"},
					{"name": "quantity", "type": "int"},
					{"name": "price_at_time", "type": "string"}
				]
			}
		}}
	]
}`
