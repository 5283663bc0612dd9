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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrInvalidStatusTransition 订单当前状态不允许该操作
	ErrInvalidStatusTransition = errors.New("订单状态非法")
)

type OrderDAO interface {
	// CreateOrder 订单及订单项在同一个事务内落库
	CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error)
	FindOrderBySN(ctx context.Context, sn string) (Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error)
	FindOrderItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
	ListOrdersByBuyerID(ctx context.Context, buyerID int64, offset, limit int) ([]Order, error)
	CountOrdersByBuyerID(ctx context.Context, buyerID int64) (int64, error)
	ListOrders(ctx context.Context, offset, limit int) ([]Order, error)
	CountOrders(ctx context.Context) (int64, error)

	// MarkPaid 仅允许未支付订单转为已支付, 重复的支付回调是无效转移
	MarkPaid(ctx context.Context, orderID int64, paymentSN string, paidAt int64) error
	CompleteOrder(ctx context.Context, buyerID, orderID int64) error
	CancelOrder(ctx context.Context, buyerID, orderID int64) error
	FindExpiredOrders(ctx context.Context, ctime int64, offset, limit int) ([]Order, error)
	CloseExpiredOrders(ctx context.Context, orderIDs []int64) error
}

type orderDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &orderDAO{db: db}
}

func (g *orderDAO) CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		order.Ctime, order.Utime = now, now
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("创建订单失败: %w", err)
		}
		for i := range items {
			items[i].OrderId = order.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}
		return nil
	})
	return order.Id, err
}

func (g *orderDAO) FindOrderBySN(ctx context.Context, sn string) (Order, error) {
	var order Order
	err := g.db.WithContext(ctx).Where("sn = ?", sn).First(&order).Error
	return order, err
}

func (g *orderDAO) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error) {
	var order Order
	err := g.db.WithContext(ctx).Where("sn = ? AND buyer_id = ?", sn, buyerID).First(&order).Error
	return order, err
}

func (g *orderDAO) FindOrderItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var items []OrderItem
	err := g.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (g *orderDAO) ListOrdersByBuyerID(ctx context.Context, buyerID int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Where("buyer_id = ?", buyerID).
		Order("id desc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *orderDAO) CountOrdersByBuyerID(ctx context.Context, buyerID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Order{}).Where("buyer_id = ?", buyerID).Count(&count).Error
	return count, err
}

func (g *orderDAO) ListOrders(ctx context.Context, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Order("id desc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *orderDAO) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Order{}).Count(&count).Error
	return count, err
}

func (g *orderDAO) MarkPaid(ctx context.Context, orderID int64, paymentSN string, paidAt int64) error {
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", orderID, OrderStatusUnpaid).
		Updates(map[string]any{
			"status":     OrderStatusPaid,
			"payment_sn": paymentSN,
			"paid_at":    paidAt,
			"utime":      time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order_id=%d", ErrInvalidStatusTransition, orderID)
	}
	return nil
}

func (g *orderDAO) CompleteOrder(ctx context.Context, buyerID, orderID int64) error {
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND buyer_id = ? AND status = ?", orderID, buyerID, OrderStatusPaid).
		Updates(map[string]any{
			"status": OrderStatusCompleted,
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order_id=%d", ErrInvalidStatusTransition, orderID)
	}
	return nil
}

func (g *orderDAO) CancelOrder(ctx context.Context, buyerID, orderID int64) error {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND buyer_id = ? AND status = ?", orderID, buyerID, OrderStatusUnpaid).
		Updates(map[string]any{
			"status":    OrderStatusCanceled,
			"closed_at": now,
			"utime":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order_id=%d", ErrInvalidStatusTransition, orderID)
	}
	return nil
}

func (g *orderDAO) FindExpiredOrders(ctx context.Context, ctime int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).
		Where("status = ? AND ctime <= ?", OrderStatusUnpaid, ctime).
		Order("id asc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *orderDAO) CloseExpiredOrders(ctx context.Context, orderIDs []int64) error {
	if len(orderIDs) == 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Model(&Order{}).
		Where("id IN ? AND status = ?", orderIDs, OrderStatusUnpaid).
		Updates(map[string]any{
			"status":    OrderStatusExpired,
			"closed_at": now,
			"utime":     now,
		}).Error
}

const (
	OrderStatusUnpaid    = 1
	OrderStatusPaid      = 2
	OrderStatusCompleted = 3
	OrderStatusCanceled  = 4
	OrderStatusExpired   = 5
)

type Order struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN          string `gorm:"column:sn;type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId     int64  `gorm:"not null;index:idx_buyer_id;comment:买家ID"`
	PaymentSN   string `gorm:"column:payment_sn;type:varchar(255);comment:支付序列号"`
	TotalAmount int64  `gorm:"not null;comment:订单总价;单位为分, 999表示9.99元"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status_ctime,priority:1;comment:订单状态 1=未支付 2=已支付 3=已完成 4=已取消 5=已超时"`
	ClosedAt    int64  `gorm:"comment:订单关闭时间"`
	PaidAt      int64  `gorm:"comment:订单支付时间"`
	Ctime       int64  `gorm:"index:idx_status_ctime,priority:2"`
	Utime       int64
}

type OrderItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId int64  `gorm:"not null;comment:商品ID"`
	SellerId  int64  `gorm:"not null;index:idx_seller_id;comment:卖家ID"`
	Name      string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Price     int64  `gorm:"not null;comment:成交单价;单位为分"`
	Quantity  int64  `gorm:"not null;comment:购买数量"`
	Ctime     int64
	Utime     int64
}
