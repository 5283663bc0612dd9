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
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/ecodeclub/wemall/internal/settlement/internal/integration/startup"
	"github.com/ecodeclub/wemall/internal/settlement/internal/web"
	"github.com/ecodeclub/wemall/internal/test"
	testioc "github.com/ecodeclub/wemall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const uid = int64(101)

type ModuleTestSuite struct {
	suite.Suite
	server      *egin.Component
	db          *egorm.Component
	svc         settlement.Service
	settingsSvc settings.Service
}

func (s *ModuleTestSuite) SetupSuite() {
	m, err := startup.InitModule()
	require.NoError(s.T(), err)
	s.svc = m.Settlement.Svc
	s.settingsSvc = m.SettingsSvc

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: uid,
		}))
	})
	m.Settlement.Hdl.PrivateRoutes(server.Engine)
	s.server = server
	s.db = testioc.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(s.T(), s.settingsSvc.SaveCommissionSetting(ctx, settings.CommissionSetting{
		DefaultRateBps: 1000,
	}))
	require.NoError(s.T(), s.settingsSvc.SavePayoutSetting(ctx, settings.PayoutSetting{
		MinPayoutAmount:   1000,
		HoldingPeriodDays: 7,
	}))
}

func (s *ModuleTestSuite) TearDownTest() {
	tables := []string{
		"sub_orders",
		"sub_order_items",
		"seller_earnings",
		"earning_reservations",
		"earning_reservation_items",
	}
	for _, table := range tables {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *ModuleTestSuite) TestSplitOrder() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	subOrders, err := s.svc.SplitOrder(ctx, settlement.OrderInfo{
		OrderID:     100,
		OrderSN:     "ORDER-100",
		BuyerID:     7,
		TotalAmount: 119800,
		Items: []settlement.OrderInfoItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 33300, Quantity: 3},
			{ProductID: 2, SellerID: 202, Name: "显示器", Price: 19900, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, subOrders, 2)
	assert.Equal(t, uid, subOrders[0].SellerID)
	assert.Equal(t, int64(99900), subOrders[0].TotalAmount)
	assert.Equal(t, int64(202), subOrders[1].SellerID)
	assert.Equal(t, int64(19900), subOrders[1].TotalAmount)

	earnings, total, err := s.svc.ListEarningsBySellerID(ctx, uid, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(9990), earnings[0].CommissionAmount)
	assert.Equal(t, int64(89910), earnings[0].NetAmount)
	assert.Equal(t, settlement.EarningStatusPending, earnings[0].Status)

	balance, err := s.svc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(89910), balance.Pending)
	assert.Equal(t, int64(0), balance.Available)
}

func (s *ModuleTestSuite) TestSplitOrderIdempotent() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	order := settlement.OrderInfo{
		OrderID:     200,
		OrderSN:     "ORDER-200",
		BuyerID:     7,
		TotalAmount: 10000,
		Items: []settlement.OrderInfoItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 10000, Quantity: 1},
		},
	}
	_, err := s.svc.SplitOrder(ctx, order)
	require.NoError(t, err)
	_, err = s.svc.SplitOrder(ctx, order)
	assert.ErrorIs(t, err, settlement.ErrOrderAlreadySplit)

	subOrders, err := s.svc.FindSubOrdersByParentOrderID(ctx, 200)
	require.NoError(t, err)
	assert.Len(t, subOrders, 1)
}

func (s *ModuleTestSuite) TestPromoteAndReserve() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	// 10000 毛收入, 默认费率 10% => 净收益 9000
	_, err := s.svc.SplitOrder(ctx, settlement.OrderInfo{
		OrderID:     300,
		OrderSN:     "ORDER-300",
		BuyerID:     7,
		TotalAmount: 10000,
		Items: []settlement.OrderInfoItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 10000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	// 把保护期调到过去
	err = s.db.Exec("UPDATE `seller_earnings` SET available_at = ?",
		time.Now().Add(-time.Hour).UnixMilli()).Error
	require.NoError(t, err)

	affected, err := s.svc.PromoteDueEarnings(ctx, time.Now(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	balance, err := s.svc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), balance.Available)

	rid, err := s.svc.TryReserveEarnings(ctx, uid, 5000)
	require.NoError(t, err)
	balance, err = s.svc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance.Available)
	// 预留中的金额不减少总额
	assert.Equal(t, int64(5000), balance.Reserved)
	assert.Equal(t, int64(9000), balance.Total)

	// 剩余 4000, 再预留 5000 应该失败
	_, err = s.svc.TryReserveEarnings(ctx, uid, 5000)
	assert.ErrorIs(t, err, settlement.ErrInsufficientBalance)

	require.NoError(t, s.svc.ConfirmReservation(ctx, uid, rid))
	// 审批方改单失败后会重试确认, 重复确认按成功处理且不重复扣减
	require.NoError(t, s.svc.ConfirmReservation(ctx, uid, rid))
	balance, err = s.svc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance.Available)
	assert.Equal(t, int64(0), balance.Reserved)
	assert.Equal(t, int64(5000), balance.Paid)
	assert.Equal(t, int64(9000), balance.Total)
}

func (s *ModuleTestSuite) TestCancelReservation() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := s.svc.SplitOrder(ctx, settlement.OrderInfo{
		OrderID:     400,
		OrderSN:     "ORDER-400",
		BuyerID:     7,
		TotalAmount: 10000,
		Items: []settlement.OrderInfoItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 10000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	err = s.db.Exec("UPDATE `seller_earnings` SET available_at = ?",
		time.Now().Add(-time.Hour).UnixMilli()).Error
	require.NoError(t, err)
	_, err = s.svc.PromoteDueEarnings(ctx, time.Now(), 100)
	require.NoError(t, err)

	rid, err := s.svc.TryReserveEarnings(ctx, uid, 9000)
	require.NoError(t, err)
	require.NoError(t, s.svc.CancelReservation(ctx, uid, rid))
	// 重复取消按成功处理且不重复退回
	require.NoError(t, s.svc.CancelReservation(ctx, uid, rid))

	balance, err := s.svc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), balance.Available)
	assert.Equal(t, int64(0), balance.Reserved)
	assert.Equal(t, int64(0), balance.Paid)

	// 已取消的预留不能再确认
	err = s.svc.ConfirmReservation(ctx, uid, rid)
	assert.ErrorIs(t, err, settlement.ErrReservationNotFound)
}

func (s *ModuleTestSuite) TestListEarningsHandler() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := s.svc.SplitOrder(ctx, settlement.OrderInfo{
		OrderID:     500,
		OrderSN:     "ORDER-500",
		BuyerID:     7,
		TotalAmount: 99900,
		Items: []settlement.OrderInfoItem{
			{ProductID: 1, SellerID: uid, Name: "机械键盘", Price: 33300, Quantity: 3},
		},
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		"/seller/earnings/list", iox.NewJSONReader(web.ListEarningsReq{
			Offset: 0,
			Limit:  10,
		}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.ListEarningsResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	resp := recorder.MustScan()
	assert.Equal(t, int64(89910), resp.Data.Balance.Pending)
	require.Len(t, resp.Data.Earnings, 1)
	assert.Equal(t, int64(9990), resp.Data.Earnings[0].CommissionAmount)
	assert.Equal(t, int64(89910), resp.Data.Earnings[0].NetAmount)
}

func TestSettlementModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}
