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

	"github.com/ecodeclub/wemall/internal/order/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_DefaultsToUnpaid(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{}
	svc := NewService(repo)

	order, err := svc.CreateOrder(context.Background(), domain.Order{
		SN:          "order-sn-1",
		BuyerID:     7,
		TotalAmount: 3000,
		Status:      domain.OrderStatusPaid, // 外部传入的状态不可信
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusUnpaid, order.Status)
}

func TestMarkOrderPaid(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{
		orders: map[string]domain.Order{
			"order-sn-2": {ID: 2, SN: "order-sn-2", BuyerID: 7, Status: domain.OrderStatusUnpaid},
		},
	}
	svc := NewService(repo)

	order, err := svc.MarkOrderPaid(context.Background(), "order-sn-2", "payment-sn-2")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, "payment-sn-2", order.PaymentSN)
	assert.NotZero(t, order.PaidAt)
}

func TestMarkOrderPaid_AlreadyPaid(t *testing.T) {
	t.Parallel()
	repo := &fakeRepository{
		orders: map[string]domain.Order{
			"order-sn-3": {ID: 3, SN: "order-sn-3", Status: domain.OrderStatusPaid},
		},
	}
	svc := NewService(repo)

	_, err := svc.MarkOrderPaid(context.Background(), "order-sn-3", "payment-sn-3")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestMarkOrderPaid_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeRepository{})
	_, err := svc.MarkOrderPaid(context.Background(), "no-such-order", "payment-sn")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

type fakeRepository struct {
	orders map[string]domain.Order
}

func (f *fakeRepository) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	order.ID = int64(len(f.orders) + 1)
	return order, nil
}

func (f *fakeRepository) FindOrderBySN(_ context.Context, sn string) (domain.Order, error) {
	order, ok := f.orders[sn]
	if !ok {
		return domain.Order{}, ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeRepository) FindOrderBySNAndBuyerID(_ context.Context, sn string, buyerID int64) (domain.Order, error) {
	order, ok := f.orders[sn]
	if !ok || order.BuyerID != buyerID {
		return domain.Order{}, ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeRepository) ListOrdersByBuyerID(_ context.Context, _ int64, _, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeRepository) TotalOrdersByBuyerID(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) ListOrders(_ context.Context, _, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeRepository) TotalOrders(_ context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) MarkPaid(_ context.Context, orderID int64, paymentSN string, paidAt int64) error {
	for sn, order := range f.orders {
		if order.ID == orderID {
			if order.Status != domain.OrderStatusUnpaid {
				return ErrInvalidStatusTransition
			}
			order.Status = domain.OrderStatusPaid
			order.PaymentSN = paymentSN
			order.PaidAt = paidAt
			f.orders[sn] = order
			return nil
		}
	}
	return ErrRecordNotFound
}

func (f *fakeRepository) CompleteOrder(_ context.Context, _, _ int64) error {
	return nil
}

func (f *fakeRepository) CancelOrder(_ context.Context, _, _ int64) error {
	return nil
}

func (f *fakeRepository) FindExpiredOrders(_ context.Context, _ int64, _, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeRepository) CloseExpiredOrders(_ context.Context, _ []int64) error {
	return nil
}
