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
	"testing"
	"time"

	"github.com/ecodeclub/wemall/internal/payout"
	"github.com/ecodeclub/wemall/internal/payout/internal/integration/startup"
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
	svc           payout.Service
	settlementSvc settlement.Service
}

func (s *ModuleTestSuite) SetupSuite() {
	m, err := startup.InitModule()
	require.NoError(s.T(), err)
	s.svc = m.Payout.Svc
	s.settlementSvc = m.SettlementSvc
	s.db = testioc.InitDB()

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
		"payout_requests",
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

// seedAvailableEarning 造一笔已过保护期的收益: 毛收入 10000, 净收益 9000
func (s *ModuleTestSuite) seedAvailableEarning(ctx context.Context, orderID int64, sn string) {
	t := s.T()
	_, err := s.settlementSvc.SplitOrder(ctx, settlement.OrderInfo{
		OrderID:     orderID,
		OrderSN:     sn,
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
	_, err = s.settlementSvc.PromoteDueEarnings(ctx, time.Now(), 100)
	require.NoError(t, err)
}

func (s *ModuleTestSuite) TestRequestAndApprove() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.seedAvailableEarning(ctx, 600, "ORDER-600")

	pr, err := s.svc.RequestPayout(ctx, uid, 5000, payout.MethodBankTransfer, "6222020200112233")
	require.NoError(t, err)
	assert.Equal(t, payout.StatusPending, pr.Status)
	assert.NotEmpty(t, pr.SN)

	balance, err := s.settlementSvc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance.Available)

	require.NoError(t, s.svc.Approve(ctx, pr.ID))
	payouts, total, err := s.svc.ListPayoutsBySellerID(ctx, uid, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, payout.StatusApproved, payouts[0].Status)

	balance, err = s.settlementSvc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance.Available)
	assert.Equal(t, int64(0), balance.Reserved)
	assert.Equal(t, int64(5000), balance.Paid)
}

// 确认预留成功但改申请单状态失败时, 管理员会重试审批,
// 重试要能在预留已确认的前提下把申请单推进到已通过
func (s *ModuleTestSuite) TestApproveRetryAfterConfirm() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.seedAvailableEarning(ctx, 650, "ORDER-650")

	pr, err := s.svc.RequestPayout(ctx, uid, 5000, payout.MethodBankTransfer, "6222020200112233")
	require.NoError(t, err)
	// 模拟第一次审批在确认预留之后失败
	require.NoError(t, s.settlementSvc.ConfirmReservation(ctx, uid, pr.ReservationID))

	require.NoError(t, s.svc.Approve(ctx, pr.ID))
	payouts, _, err := s.svc.ListPayoutsBySellerID(ctx, uid, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, payout.StatusApproved, payouts[0].Status)

	balance, err := s.settlementSvc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance.Available)
	assert.Equal(t, int64(5000), balance.Paid)
	assert.Equal(t, int64(9000), balance.Total)
}

func (s *ModuleTestSuite) TestRequestBelowMinimum() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.seedAvailableEarning(ctx, 700, "ORDER-700")

	_, err := s.svc.RequestPayout(ctx, uid, 500, payout.MethodAlipay, "seller@example.com")
	assert.ErrorIs(t, err, payout.ErrBelowMinimumPayout)
}

func (s *ModuleTestSuite) TestRequestInsufficientBalance() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.seedAvailableEarning(ctx, 800, "ORDER-800")

	_, err := s.svc.RequestPayout(ctx, uid, 99999, payout.MethodAlipay, "seller@example.com")
	assert.ErrorIs(t, err, payout.ErrInsufficientBalance)
	// 失败的申请不占余额
	balance, err := s.settlementSvc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), balance.Available)
}

func (s *ModuleTestSuite) TestReject() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.seedAvailableEarning(ctx, 900, "ORDER-900")

	pr, err := s.svc.RequestPayout(ctx, uid, 5000, payout.MethodWechat, "wxid_123")
	require.NoError(t, err)
	require.NoError(t, s.svc.Reject(ctx, pr.ID, "账户信息有误"))

	payouts, _, err := s.svc.ListPayoutsBySellerID(ctx, uid, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, payout.StatusRejected, payouts[0].Status)
	assert.Equal(t, "账户信息有误", payouts[0].RejectReason)

	// 预留金额退回可提现余额
	balance, err := s.settlementSvc.GetBalance(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), balance.Available)
}

func TestPayoutModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}
