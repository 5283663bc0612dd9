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

package service

import (
	"context"
	"testing"
	"time"

	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement/internal/domain"
	"github.com/ecodeclub/wemall/internal/settlement/internal/event"
	"github.com/ecodeclub/wemall/internal/settlement/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitOrder_GroupsBySeller(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeSettings{defaultRateBps: 1000}, &fakeProducer{})

	subOrders, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID:     100,
		OrderSN:     "order-sn-100",
		BuyerID:     7,
		TotalAmount: 3000,
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 2, Name: "商品A", Price: 1000, Quantity: 1},
			{ProductID: 2, SellerID: 2, Name: "商品B", Price: 1000, Quantity: 1},
			{ProductID: 3, SellerID: 5, Name: "商品C", Price: 1000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, subOrders, 2)

	// 按卖家ID升序
	assert.Equal(t, int64(2), subOrders[0].SellerID)
	assert.Equal(t, int64(2000), subOrders[0].TotalAmount)
	assert.Len(t, subOrders[0].Items, 2)
	assert.Equal(t, int64(5), subOrders[1].SellerID)
	assert.Equal(t, int64(1000), subOrders[1].TotalAmount)
	assert.Len(t, subOrders[1].Items, 1)
	for _, so := range subOrders {
		assert.NotEmpty(t, so.SN)
		assert.Equal(t, int64(100), so.ParentOrderID)
		assert.Equal(t, "order-sn-100", so.ParentOrderSN)
		assert.Equal(t, domain.FulfillmentStatusPending, so.FulfillmentStatus)
	}
	// 子订单金额之和等于父订单总额
	assert.Equal(t, int64(3000), subOrders[0].TotalAmount+subOrders[1].TotalAmount)

	require.Len(t, repo.earnings, 2)
	assert.Equal(t, int64(200), repo.earnings[0].CommissionAmount)
	assert.Equal(t, int64(1800), repo.earnings[0].NetAmount)
	assert.Equal(t, int64(100), repo.earnings[1].CommissionAmount)
	assert.Equal(t, int64(900), repo.earnings[1].NetAmount)
	for _, e := range repo.earnings {
		assert.Equal(t, domain.EarningStatusPending, e.Status)
	}
}

func TestSplitOrder_CommissionFixture(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeSettings{defaultRateBps: 1000}, &fakeProducer{})

	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 101,
		OrderSN: "order-sn-101",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 3, Name: "商品", Price: 99900, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.earnings, 1)
	assert.Equal(t, int64(99900), repo.earnings[0].GrossAmount)
	assert.Equal(t, int64(1000), repo.earnings[0].CommissionRate)
	assert.Equal(t, int64(9990), repo.earnings[0].CommissionAmount)
	assert.Equal(t, int64(89910), repo.earnings[0].NetAmount)
}

func TestSplitOrder_MissingSellerID(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	producer := &fakeProducer{}
	svc := newTestService(repo, &fakeSettings{defaultRateBps: 1000}, producer)

	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 102,
		OrderSN: "order-sn-102",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 2, Name: "商品A", Price: 1000, Quantity: 1},
			{ProductID: 2, SellerID: 0, Name: "商品B", Price: 1000, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrMissingSellerID)
	// 整单失败, 不能部分拆分
	assert.Zero(t, repo.createCalls)
	assert.Empty(t, producer.events)
}

func TestSplitOrder_SellerRateOverride(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeSettings{
		defaultRateBps: 1000,
		sellerRates:    map[int64]int64{9: 1500},
	}, &fakeProducer{})

	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 103,
		OrderSN: "order-sn-103",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 9, Name: "商品", Price: 10000, Quantity: 1},
			{ProductID: 2, SellerID: 10, Name: "商品", Price: 10000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.earnings, 2)
	assert.Equal(t, int64(1500), repo.earnings[0].CommissionRate)
	assert.Equal(t, int64(1500), repo.earnings[0].CommissionAmount)
	assert.Equal(t, int64(1000), repo.earnings[1].CommissionRate)
	assert.Equal(t, int64(1000), repo.earnings[1].CommissionAmount)
}

func TestSplitOrder_ProcessingFee(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeSettings{
		defaultRateBps: 1000,
		payout: settings.PayoutSetting{
			MinPayoutAmount:      1000,
			HoldingPeriodDays:    7,
			ProcessingFeeRateBps: 290,
			ProcessingFeeFixed:   30,
		},
	}, &fakeProducer{})

	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 104,
		OrderSN: "order-sn-104",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 3, Name: "商品", Price: 10000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.earnings, 1)
	// 10000*2.9%+30 = 320
	assert.Equal(t, int64(320), repo.earnings[0].ProcessingFee)
	assert.Equal(t, int64(1000), repo.earnings[0].CommissionAmount)
	assert.Equal(t, int64(8680), repo.earnings[0].NetAmount)
}

func TestSplitOrder_HoldingPeriod(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeSettings{
		defaultRateBps: 1000,
		payout: settings.PayoutSetting{
			MinPayoutAmount:   1000,
			HoldingPeriodDays: 7,
		},
	}, &fakeProducer{})

	before := time.Now().Add(7 * 24 * time.Hour).UnixMilli()
	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 105,
		OrderSN: "order-sn-105",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 3, Name: "商品", Price: 1000, Quantity: 1},
		},
	})
	after := time.Now().Add(7 * 24 * time.Hour).UnixMilli()
	require.NoError(t, err)
	require.Len(t, repo.earnings, 1)
	assert.GreaterOrEqual(t, repo.earnings[0].AvailableAt, before)
	assert.LessOrEqual(t, repo.earnings[0].AvailableAt, after)
}

func TestSplitOrder_AlreadySplit(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{createErr: repository.ErrOrderAlreadySplit}
	producer := &fakeProducer{}
	svc := newTestService(repo, &fakeSettings{defaultRateBps: 1000}, producer)

	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 106,
		OrderSN: "order-sn-106",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 3, Name: "商品", Price: 1000, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrOrderAlreadySplit)
	assert.Empty(t, producer.events)
}

func TestSplitOrder_ProducesEarningEvents(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	producer := &fakeProducer{}
	svc := newTestService(repo, &fakeSettings{defaultRateBps: 1000}, producer)

	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{
		OrderID: 107,
		OrderSN: "order-sn-107",
		Items: []domain.OrderInfoItem{
			{ProductID: 1, SellerID: 2, Name: "商品", Price: 1000, Quantity: 2},
			{ProductID: 2, SellerID: 5, Name: "商品", Price: 1000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, producer.events, 2)
	assert.Equal(t, "order-sn-107", producer.events[0].OrderSN)
	assert.Equal(t, int64(2), producer.events[0].SellerID)
	assert.Equal(t, int64(1800), producer.events[0].NetAmount)
	assert.Equal(t, int64(5), producer.events[1].SellerID)
	assert.Equal(t, int64(900), producer.events[1].NetAmount)
}

func TestSplitOrder_EmptyOrder(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := newTestService(repo, &fakeSettings{defaultRateBps: 1000}, &fakeProducer{})
	_, err := svc.SplitOrder(context.Background(), domain.OrderInfo{OrderID: 108})
	assert.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestTryReserveEarnings_InvalidAmount(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakeRepository{}, &fakeSettings{defaultRateBps: 1000}, &fakeProducer{})
	_, err := svc.TryReserveEarnings(context.Background(), 3, 0)
	assert.Error(t, err)
	_, err = svc.TryReserveEarnings(context.Background(), 3, -100)
	assert.Error(t, err)
}

func newTestService(repo repository.SettlementRepository, st settings.Service, p event.EarningEventProducer) Service {
	return NewService(repo, st, sequencenumber.NewGenerator(), p)
}

type fakeRepository struct {
	createCalls int
	createErr   error
	subOrders   []domain.SubOrder
	earnings    []domain.Earning
}

func (f *fakeRepository) CreateSubOrdersAndEarnings(_ context.Context, _ int64, subOrders []domain.SubOrder, earnings []domain.Earning) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.subOrders = subOrders
	f.earnings = earnings
	return nil
}

func (f *fakeRepository) FindSubOrdersByParentOrderID(_ context.Context, _ int64) ([]domain.SubOrder, error) {
	return f.subOrders, nil
}

func (f *fakeRepository) ListSubOrdersBySellerID(_ context.Context, _ int64, _, _ int) ([]domain.SubOrder, error) {
	return f.subOrders, nil
}

func (f *fakeRepository) TotalSubOrdersBySellerID(_ context.Context, _ int64) (int64, error) {
	return int64(len(f.subOrders)), nil
}

func (f *fakeRepository) UpdateFulfillmentStatus(_ context.Context, _, _ int64, _ domain.FulfillmentStatus) error {
	return nil
}

func (f *fakeRepository) ListEarningsBySellerID(_ context.Context, _ int64, _, _ int) ([]domain.Earning, error) {
	return f.earnings, nil
}

func (f *fakeRepository) TotalEarningsBySellerID(_ context.Context, _ int64) (int64, error) {
	return int64(len(f.earnings)), nil
}

func (f *fakeRepository) GetBalance(_ context.Context, sellerID int64) (domain.Balance, error) {
	return domain.Balance{SellerID: sellerID}, nil
}

func (f *fakeRepository) PromoteDueEarnings(_ context.Context, _ int64, _ int) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) TryReserve(_ context.Context, _, _ int64) (int64, error) {
	return 1, nil
}

func (f *fakeRepository) ConfirmReservation(_ context.Context, _, _ int64) error {
	return nil
}

func (f *fakeRepository) CancelReservation(_ context.Context, _, _ int64) error {
	return nil
}

type fakeSettings struct {
	defaultRateBps int64
	sellerRates    map[int64]int64
	payout         settings.PayoutSetting
}

func (f *fakeSettings) GetCommissionSetting(_ context.Context) (settings.CommissionSetting, error) {
	return settings.CommissionSetting{DefaultRateBps: f.defaultRateBps}, nil
}

func (f *fakeSettings) SaveCommissionSetting(_ context.Context, _ settings.CommissionSetting) error {
	return nil
}

func (f *fakeSettings) CommissionRateFor(_ context.Context, sellerID int64) (int64, error) {
	if rate, ok := f.sellerRates[sellerID]; ok {
		return rate, nil
	}
	return f.defaultRateBps, nil
}

func (f *fakeSettings) SaveSellerRate(_ context.Context, _ settings.SellerRate) error {
	return nil
}

func (f *fakeSettings) GetPayoutSetting(_ context.Context) (settings.PayoutSetting, error) {
	if f.payout == (settings.PayoutSetting{}) {
		return settings.PayoutSetting{MinPayoutAmount: 1000, HoldingPeriodDays: 7}, nil
	}
	return f.payout, nil
}

func (f *fakeSettings) SavePayoutSetting(_ context.Context, _ settings.PayoutSetting) error {
	return nil
}

type fakeProducer struct {
	events []event.EarningEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.EarningEvent) error {
	f.events = append(f.events, evt)
	return nil
}
