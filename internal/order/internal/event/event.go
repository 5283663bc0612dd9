package event

const PaymentEventName = "payment_events"

// PaymentEvent 支付模块在支付结果确定后发出
type PaymentEvent struct {
	OrderSN   string `json:"orderSN"`
	PaymentSN string `json:"paymentSN"`
	PayerID   int64  `json:"payerID"`
	// 1=支付成功 2=支付失败
	Status uint8 `json:"status"`
}

const (
	PaymentStatusSuccess uint8 = 1
	PaymentStatusFailed  uint8 = 2
)
