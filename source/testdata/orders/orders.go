package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusNew  Status = "NEW"
	StatusPaid Status = "PAID"
)

type Base struct {
	ID int64 `json:"id"`
}

type OrderDto struct {
	Base
	Status    Status            `json:"status"`
	Items     []string          `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"createdAt"`
	Timeout   time.Duration     `json:"timeout"`
	Note      *int              `json:"note,omitempty"`
	Code      rune              `avro:"code" json:"c"`
	Lines     []LineDto         `json:"lines"`
	Attrs     map[string]string `json:"attrs"`
	Raw       []byte            `json:"raw"`
	Callback  func()            `json:"callback"`
	Ignored   string            `json:"-"`
	secret    string
}

type LineDto struct {
	Sku string
	Qty int16
}

type Node struct {
	Next *Node
}
