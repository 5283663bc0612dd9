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

package repository

import (
	"context"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/wemall/internal/order/internal/domain"
	"github.com/ecodeclub/wemall/internal/order/internal/repository/dao"
)

var (
	ErrRecordNotFound          = dao.ErrRecordNotFound
	ErrInvalidStatusTransition = dao.ErrInvalidStatusTransition
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	ListOrdersByBuyerID(ctx context.Context, buyerID int64, offset, limit int) ([]domain.Order, error)
	TotalOrdersByBuyerID(ctx context.Context, buyerID int64) (int64, error)
	ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, error)
	TotalOrders(ctx context.Context) (int64, error)

	MarkPaid(ctx context.Context, orderID int64, paymentSN string, paidAt int64) error
	CompleteOrder(ctx context.Context, buyerID, orderID int64) error
	CancelOrder(ctx context.Context, buyerID, orderID int64) error
	FindExpiredOrders(ctx context.Context, ctime int64, offset, limit int) ([]domain.Order, error)
	CloseExpiredOrders(ctx context.Context, orderIDs []int64) error
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.d.CreateOrder(ctx, o.toOrderEntity(order), o.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, err := o.d.FindOrderBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, fmt.Errorf("通过订单序列号查找订单失败: %w", err)
	}
	items, err := o.d.FindOrderItemsByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找订单项失败: %w", err)
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	order, err := o.d.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("通过订单序列号及买家ID查找订单失败: %w", err)
	}
	items, err := o.d.FindOrderItemsByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找订单项失败: %w", err)
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) ListOrdersByBuyerID(ctx context.Context, buyerID int64, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.ListOrdersByBuyerID(ctx, buyerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return o.assembleOrders(ctx, orders)
}

func (o *orderRepository) TotalOrdersByBuyerID(ctx context.Context, buyerID int64) (int64, error) {
	return o.d.CountOrdersByBuyerID(ctx, buyerID)
}

func (o *orderRepository) ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.ListOrders(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return o.assembleOrders(ctx, orders)
}

func (o *orderRepository) TotalOrders(ctx context.Context) (int64, error) {
	return o.d.CountOrders(ctx)
}

func (o *orderRepository) assembleOrders(ctx context.Context, orders []dao.Order) ([]domain.Order, error) {
	res := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		items, err := o.d.FindOrderItemsByOrderID(ctx, order.Id)
		if err != nil {
			return nil, fmt.Errorf("查找订单项失败: %w", err)
		}
		res = append(res, o.toOrderDomain(order, items))
	}
	return res, nil
}

func (o *orderRepository) MarkPaid(ctx context.Context, orderID int64, paymentSN string, paidAt int64) error {
	return o.d.MarkPaid(ctx, orderID, paymentSN, paidAt)
}

func (o *orderRepository) CompleteOrder(ctx context.Context, buyerID, orderID int64) error {
	return o.d.CompleteOrder(ctx, buyerID, orderID)
}

func (o *orderRepository) CancelOrder(ctx context.Context, buyerID, orderID int64) error {
	return o.d.CancelOrder(ctx, buyerID, orderID)
}

func (o *orderRepository) FindExpiredOrders(ctx context.Context, ctime int64, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.FindExpiredOrders(ctx, ctime, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(orders, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, nil)
	}), nil
}

func (o *orderRepository) CloseExpiredOrders(ctx context.Context, orderIDs []int64) error {
	return o.d.CloseExpiredOrders(ctx, orderIDs)
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:          order.ID,
		SN:          order.SN,
		BuyerId:     order.BuyerID,
		PaymentSN:   order.PaymentSN,
		TotalAmount: order.TotalAmount,
		Status:      order.Status.ToUint8(),
		ClosedAt:    order.ClosedAt,
		PaidAt:      order.PaidAt,
	}
}

func (o *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			ProductId: src.ProductID,
			SellerId:  src.SellerID,
			Name:      src.Name,
			Price:     src.Price,
			Quantity:  src.Quantity,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, items []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:          order.Id,
		SN:          order.SN,
		BuyerID:     order.BuyerId,
		PaymentSN:   order.PaymentSN,
		TotalAmount: order.TotalAmount,
		Status:      domain.OrderStatus(order.Status),
		ClosedAt:    order.ClosedAt,
		PaidAt:      order.PaidAt,
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
			return domain.OrderItem{
				OrderID:   src.OrderId,
				ProductID: src.ProductId,
				SellerID:  src.SellerId,
				Name:      src.Name,
				Price:     src.Price,
				Quantity:  src.Quantity,
			}
		}),
		Ctime: order.Ctime,
		Utime: order.Utime,
	}
}
