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

//go:build e2e

package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/wemall/internal/order"
	"github.com/ecodeclub/wemall/internal/order/internal/event"
	"github.com/ecodeclub/wemall/internal/order/internal/integration/startup"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	testioc "github.com/ecodeclub/wemall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const uid = int64(101)

type ModuleTestSuite struct {
	suite.Suite
	db            *egorm.Component
	svc           order.Service
	consumer      *order.PaymentConsumer
	settlementSvc settlement.Service
	producer      mq.Producer
}

func (s *ModuleTestSuite) SetupSuite() {
	m, err := startup.InitModule()
	require.NoError(s.T(), err)
	s.svc = m.Order.Svc
	s.consumer = m.Order.Consumer
	s.settlementSvc = m.SettlementSvc
	s.db = testioc.InitDB()
	s.producer, err = testioc.InitMQ().Producer(event.PaymentEventName)
	require.NoError(s.T(), err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(s.T(), m.SettingsSvc.SaveCommissionSetting(ctx, settings.CommissionSetting{
		DefaultRateBps: 1000,
	}))
	require.NoError(s.T(), m.SettingsSvc.SavePayoutSetting(ctx, settings.PayoutSetting{
		MinPayoutAmount:   1000,
		HoldingPeriodDays: 7,
	}))
}

func (s *ModuleTestSuite) TearDownTest() {
	tables := []string{
		"orders",
		"order_items",
		"sub_orders",
		"sub_order_items",
		"seller_earnings",
	}
	for _, table := range tables {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *ModuleTestSuite) producePaymentEvent(ctx context.Context, evt event.PaymentEvent) {
	data, err := json.Marshal(evt)
	require.NoError(s.T(), err)
	_, err = s.producer.Produce(ctx, &mq.Message{Value: data})
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) TestPaymentEventTriggersSplit() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := s.svc.CreateOrder(ctx, order.Order{
		SN:          "ORDER-1000",
		BuyerID:     7,
		TotalAmount: 10000,
		Items: []order.OrderItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 10000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, order.StatusUnpaid, created.Status)

	s.producePaymentEvent(ctx, event.PaymentEvent{
		OrderSN:   "ORDER-1000",
		PaymentSN: "PAY-1000",
		PayerID:   7,
		Status:    event.PaymentStatusSuccess,
	})
	require.NoError(t, s.consumer.Consume(ctx))

	got, err := s.svc.FindOrderBySN(ctx, "ORDER-1000")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, got.Status)
	assert.Equal(t, "PAY-1000", got.PaymentSN)

	subOrders, err := s.settlementSvc.FindSubOrdersByParentOrderID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, subOrders, 1)
	assert.Equal(t, uid, subOrders[0].SellerID)
	assert.Equal(t, int64(10000), subOrders[0].TotalAmount)
}

func (s *ModuleTestSuite) TestDuplicatePaymentEvent() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := s.svc.CreateOrder(ctx, order.Order{
		SN:          "ORDER-1100",
		BuyerID:     7,
		TotalAmount: 10000,
		Items: []order.OrderItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 10000, Quantity: 1},
		},
	})
	require.NoError(t, err)

	evt := event.PaymentEvent{
		OrderSN:   "ORDER-1100",
		PaymentSN: "PAY-1100",
		PayerID:   7,
		Status:    event.PaymentStatusSuccess,
	}
	s.producePaymentEvent(ctx, evt)
	require.NoError(t, s.consumer.Consume(ctx))
	// 重复投递同一个支付事件
	s.producePaymentEvent(ctx, evt)
	require.NoError(t, s.consumer.Consume(ctx))

	got, err := s.svc.FindOrderBySN(ctx, "ORDER-1100")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, got.Status)

	subOrders, err := s.settlementSvc.FindSubOrdersByParentOrderID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, subOrders, 1)
}

func TestOrderModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}
