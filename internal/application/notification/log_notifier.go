package notification

import (
	"context"

	"github.com/MamaFati/farmDirect/pkg/logger"
)

// LogNotifier writes notices to the structured log. It stands in for a
// mail or SMS gateway.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifySeller(ctx context.Context, notice SellerNotice) error {
	n.log.WithContext(ctx).Info("new order for seller",
		logger.UUID("seller_id", notice.SellerID),
		logger.UUID("order_id", notice.OrderID),
		logger.UUID("buyer_id", notice.BuyerID),
		logger.Int("lines", len(notice.Lines)),
		logger.String("subtotal", notice.Subtotal),
	)
	return nil
}
