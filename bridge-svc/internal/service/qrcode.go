package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int64) ([]byte, error)
}

// DefaultQRGenerator encodes the table-side rating link for an order.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(orderID int64) string {
	return fmt.Sprintf("%s/rate.html?order_id=%d", g.BaseURL, orderID)
}

func (g DefaultQRGenerator) Generate(orderID int64) ([]byte, error) {
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, 256)
}
