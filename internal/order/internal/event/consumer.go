// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/wemall/internal/order/internal/domain"
	"github.com/ecodeclub/wemall/internal/order/internal/service"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/gotomicro/ego/core/elog"
)

// PaymentConsumer 消费支付结果, 把订单标记为已支付并按卖家拆分结算
type PaymentConsumer struct {
	svc           service.Service
	settlementSvc settlement.Service
	consumer      mq.Consumer
	producer      OrderEventProducer
	logger        *elog.Component
}

func NewPaymentConsumer(svc service.Service, settlementSvc settlement.Service, producer OrderEventProducer, q mq.MQ) (*PaymentConsumer, error) {
	const groupID = "order"
	consumer, err := q.Consumer(PaymentEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &PaymentConsumer{
		svc:           svc,
		settlementSvc: settlementSvc,
		consumer:      consumer,
		producer:      producer,
		logger:        elog.DefaultLogger,
	}, nil
}

func (c *PaymentConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费支付事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *PaymentConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt PaymentEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	if evt.Status != PaymentStatusSuccess {
		return nil
	}

	order, err := c.svc.MarkOrderPaid(ctx, evt.OrderSN, evt.PaymentSN)
	if err != nil {
		// 重复的支付回调会命中非法状态转移, 不算失败
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			c.logger.Warn("忽略重复的支付事件", elog.String("order_sn", evt.OrderSN))
			order, err = c.svc.FindOrderBySN(ctx, evt.OrderSN)
			if err != nil {
				return fmt.Errorf("订单未找到: %w", err)
			}
		} else {
			c.logger.Error("标记订单已支付失败",
				elog.FieldErr(err),
				elog.String("order_sn", evt.OrderSN))
			return err
		}
	}

	_, err = c.settlementSvc.SplitOrder(ctx, c.toOrderInfo(order))
	if err != nil && !errors.Is(err, settlement.ErrOrderAlreadySplit) {
		c.logger.Error("拆分订单失败",
			elog.FieldErr(err),
			elog.String("order_sn", evt.OrderSN))
		return fmt.Errorf("拆分订单失败: %w", err)
	}

	// 通知属于外部协作方, 发送失败只记日志
	er := c.producer.Produce(ctx, OrderEvent{
		OrderSN: order.SN,
		BuyerID: order.BuyerID,
		Status:  order.Status.ToUint8(),
	})
	if er != nil {
		c.logger.Error("发送订单事件失败",
			elog.FieldErr(er),
			elog.String("order_sn", order.SN))
	}
	return nil
}

func (c *PaymentConsumer) toOrderInfo(order domain.Order) settlement.OrderInfo {
	return settlement.OrderInfo{
		OrderID:     order.ID,
		OrderSN:     order.SN,
		BuyerID:     order.BuyerID,
		TotalAmount: order.TotalAmount,
		Items: slice.Map(order.Items, func(idx int, src domain.OrderItem) settlement.OrderInfoItem {
			return settlement.OrderInfoItem{
				ProductID: src.ProductID,
				SellerID:  src.SellerID,
				Name:      src.Name,
				Price:     src.Price,
				Quantity:  src.Quantity,
			}
		}),
	}
}
