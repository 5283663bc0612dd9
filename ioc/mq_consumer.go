package ioc

import (
	"github.com/ecodeclub/wemall/internal/order"
)

func initMQConsumers(paymentConsumer *order.PaymentConsumer) []Consumer {
	return []Consumer{
		paymentConsumer,
	}
}
