package domain

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/auction/base/ctx"
)

// RechargeRequest tops up the balance, 1000 units make a credit
type RechargeRequest struct {
	Amount int64 `json:"amount" validate:"min=1"`
}

type Exchange struct {
	Id        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"` // pending, completed, cancelled
	CreatedAt Timestamp       `json:"createdAt"`
}

type Dashboard struct {
	TotalExchange       int             `json:"totalExchange"`
	TotalExchangeAmount decimal.Decimal `json:"totalExchangeAmount"`
	TotalBid            int             `json:"totalBid"`
	TotalItems          int             `json:"totalItems"`
	TotalBidRevenue     decimal.Decimal `json:"totalBidRevenue"`
	TotalSellRevenue    decimal.Decimal `json:"totalSellRevenue"`
	Top5Exchanges       []Exchange      `json:"top5Exchanges"`
}

func (d *Dashboard) TotalRevenue() decimal.Decimal {
	return d.TotalBidRevenue.Add(d.TotalSellRevenue)
}

type PaymentRepo interface {
	// Pay returns the url of the payment page
	Pay(c ctx.Ctx, req RechargeRequest) (string, error)
	Dashboard(c ctx.Ctx) (*Dashboard, error)
}

// FileRepo stores uploads on the backend
type FileRepo interface {
	// Upload returns the stored path
	Upload(c ctx.Ctx, name string, data []byte) (string, error)
}

// MaxUploadSize bounds what the client reads from an upload source
const MaxUploadSize = 10 << 20

type FileUsecase interface {
	// Upload accepts images and pdf documents and returns the stored path
	Upload(c ctx.Ctx, name string, r io.Reader) (string, error)
}
