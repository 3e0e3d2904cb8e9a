package avro

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MamaFati/farmDirect/internal/domain/order"
)

// OrderPlacedCodec converts order.Placed events to and from Avro binary.
type OrderPlacedCodec struct {
	enc *Encoder
}

func NewOrderPlacedCodec() (*OrderPlacedCodec, error) {
	enc, err := NewEncoder(OrderPlacedSchema)
	if err != nil {
		return nil, err
	}
	return &OrderPlacedCodec{enc: enc}, nil
}

func (c *OrderPlacedCodec) Encode(ev order.Placed) ([]byte, error) {
	return c.enc.EncodeNative(ToOrderPlacedNative(ev))
}

func (c *OrderPlacedCodec) Decode(data []byte) (order.Placed, error) {
	native, err := c.enc.DecodeNative(data)
	if err != nil {
		return order.Placed{}, err
	}
	m, ok := native.(map[string]interface{})
	if !ok {
		return order.Placed{}, fmt.Errorf("order placed: want record, got %T", native)
	}
	return FromOrderPlacedNative(m)
}

// ToOrderPlacedNative builds the goavro native form. Optional fields use the
// goavro union convention map[string]interface{}{"string": v}.
func ToOrderPlacedNative(ev order.Placed) map[string]interface{} {
	lines := make([]interface{}, 0, len(ev.Lines))
	for _, l := range ev.Lines {
		var productID interface{}
		if l.ProductID != "" {
			productID = map[string]interface{}{"string": l.ProductID}
		}
		lines = append(lines, map[string]interface{}{
			"product_id":    productID,
			"product_name":  l.ProductName,
			"seller_id":     l.SellerID.String(),
			"quantity":      int32(l.Quantity),
			"price_at_time": l.PriceAtTime,
		})
	}
	return map[string]interface{}{
		"order_id":     ev.OrderID.String(),
		"buyer_id":     ev.BuyerID.String(),
		"total_amount": ev.TotalAmount,
		"placed_at":    ev.PlacedAt.UTC(),
		"lines":        lines,
	}
}

func FromOrderPlacedNative(m map[string]interface{}) (order.Placed, error) {
	var (
		ev  order.Placed
		err error
	)
	if ev.OrderID, err = uuidField(m, "order_id"); err != nil {
		return ev, err
	}
	if ev.BuyerID, err = uuidField(m, "buyer_id"); err != nil {
		return ev, err
	}
	ev.TotalAmount, _ = m["total_amount"].(string)
	if ts, ok := m["placed_at"].(time.Time); ok {
		ev.PlacedAt = ts.UTC()
	}

	raw, _ := m["lines"].([]interface{})
	ev.Lines = make([]order.PlacedLine, 0, len(raw))
	for i, r := range raw {
		lm, ok := r.(map[string]interface{})
		if !ok {
			return ev, fmt.Errorf("line %d: want record, got %T", i, r)
		}
		line := order.PlacedLine{}
		if u, ok := lm["product_id"].(map[string]interface{}); ok {
			line.ProductID, _ = u["string"].(string)
		}
		line.ProductName, _ = lm["product_name"].(string)
		if line.SellerID, err = uuidField(lm, "seller_id"); err != nil {
			return ev, fmt.Errorf("line %d: %w", i, err)
		}
		if q, ok := lm["quantity"].(int32); ok {
			line.Quantity = int(q)
		}
		line.PriceAtTime, _ = lm["price_at_time"].(string)
		ev.Lines = append(ev.Lines, line)
	}
	return ev, nil
}

func uuidField(m map[string]interface{}, key string) (uuid.UUID, error) {
	s, _ := m[key].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("field %s: %w", key, err)
	}
	return id, nil
}
