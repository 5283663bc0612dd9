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
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrOrderAlreadySplit 父订单已经拆过单, 重复的支付回调会触发
	ErrOrderAlreadySplit = errors.New("订单已拆单")
	// ErrInsufficientBalance 可提现余额不足
	ErrInsufficientBalance = errors.New("可提现余额不足")
	ErrReservationNotFound = errors.New("预留记录未找到")
	ErrRecordNotFound      = gorm.ErrRecordNotFound
)

type SettlementDAO interface {
	// CreateSubOrdersAndEarnings 拆单落库, 子订单和收益记录要么全部创建要么全不创建。
	// 同一个父订单重复拆单返回 ErrOrderAlreadySplit
	CreateSubOrdersAndEarnings(ctx context.Context, parentOrderID int64, subOrders []SubOrder, items map[int64][]SubOrderItem, earnings []SellerEarning) error
	FindSubOrdersByParentOrderID(ctx context.Context, parentOrderID int64) ([]SubOrder, error)
	FindSubOrderItems(ctx context.Context, subOrderID int64) ([]SubOrderItem, error)
	ListSubOrdersBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]SubOrder, error)
	CountSubOrdersBySellerID(ctx context.Context, sellerID int64) (int64, error)
	UpdateFulfillmentStatus(ctx context.Context, sellerID, subOrderID int64, status uint8) error

	ListEarningsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]SellerEarning, error)
	CountEarningsBySellerID(ctx context.Context, sellerID int64) (int64, error)
	// SumEarningsBySellerID 按状态汇总净额, 其中可提现部分要扣掉已预留和已支付的切片,
	// 被进行中提现单预留的金额单独返回
	SumEarningsBySellerID(ctx context.Context, sellerID int64) (pending, available, reserved, paid int64, err error)
	// PromoteDueEarnings 把保护期已过的收益置为可提现, 返回受影响行数
	PromoteDueEarnings(ctx context.Context, now int64, limit int) (int64, error)

	TryReserve(ctx context.Context, sellerID, amount int64) (int64, error)
	// ConfirmReservation 和 CancelReservation 都是幂等的,
	// 已处于对应终态的预留重复提交按成功处理
	ConfirmReservation(ctx context.Context, sellerID, rid int64) error
	CancelReservation(ctx context.Context, sellerID, rid int64) error
}

type settlementDAO struct {
	db *egorm.Component
}

func NewSettlementGORMDAO(db *egorm.Component) SettlementDAO {
	return &settlementDAO{db: db}
}

func (g *settlementDAO) CreateSubOrdersAndEarnings(ctx context.Context, parentOrderID int64, subOrders []SubOrder, items map[int64][]SubOrderItem, earnings []SellerEarning) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 幂等保护: 在同一个事务里检查父订单是否已有子订单,
		// 配合 (parent_order_id, seller_id) 唯一索引兜底
		var count int64
		if err := tx.Model(&SubOrder{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("parent_order_id = ?", parentOrderID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("检查重复拆单失败: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: parent_order_id=%d", ErrOrderAlreadySplit, parentOrderID)
		}
		now := time.Now().UnixMilli()
		for i := range subOrders {
			subOrders[i].Ctime, subOrders[i].Utime = now, now
			if err := tx.Create(&subOrders[i]).Error; err != nil {
				if g.isDuplicatedErr(err) {
					return fmt.Errorf("%w: parent_order_id=%d", ErrOrderAlreadySplit, parentOrderID)
				}
				return fmt.Errorf("创建子订单失败: %w", err)
			}
			sellerItems := items[subOrders[i].SellerId]
			for j := range sellerItems {
				sellerItems[j].SubOrderId = subOrders[i].Id
				sellerItems[j].Ctime, sellerItems[j].Utime = now, now
			}
			if len(sellerItems) > 0 {
				if err := tx.Create(&sellerItems).Error; err != nil {
					return fmt.Errorf("创建子订单商品失败: %w", err)
				}
			}
			earnings[i].SubOrderId = subOrders[i].Id
			earnings[i].Ctime, earnings[i].Utime = now, now
			if err := tx.Create(&earnings[i]).Error; err != nil {
				return fmt.Errorf("创建收益记录失败: %w", err)
			}
		}
		return nil
	})
}

func (g *settlementDAO) isDuplicatedErr(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return true
		}
	}
	return false
}

func (g *settlementDAO) FindSubOrdersByParentOrderID(ctx context.Context, parentOrderID int64) ([]SubOrder, error) {
	var res []SubOrder
	err := g.db.WithContext(ctx).Where("parent_order_id = ?", parentOrderID).Order("id asc").Find(&res).Error
	return res, err
}

func (g *settlementDAO) FindSubOrderItems(ctx context.Context, subOrderID int64) ([]SubOrderItem, error) {
	var res []SubOrderItem
	err := g.db.WithContext(ctx).Where("sub_order_id = ?", subOrderID).Find(&res).Error
	return res, err
}

func (g *settlementDAO) ListSubOrdersBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]SubOrder, error) {
	var res []SubOrder
	err := g.db.WithContext(ctx).Where("seller_id = ?", sellerID).
		Order("id desc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *settlementDAO) CountSubOrdersBySellerID(ctx context.Context, sellerID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&SubOrder{}).Where("seller_id = ?", sellerID).Count(&count).Error
	return count, err
}

func (g *settlementDAO) UpdateFulfillmentStatus(ctx context.Context, sellerID, subOrderID int64, status uint8) error {
	res := g.db.WithContext(ctx).Model(&SubOrder{}).
		Where("id = ? AND seller_id = ?", subOrderID, sellerID).
		Updates(map[string]any{
			"fulfillment_status": status,
			"utime":              time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: sub_order_id=%d", ErrRecordNotFound, subOrderID)
	}
	return nil
}

func (g *settlementDAO) ListEarningsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]SellerEarning, error) {
	var res []SellerEarning
	err := g.db.WithContext(ctx).Where("seller_id = ?", sellerID).
		Order("id desc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *settlementDAO) CountEarningsBySellerID(ctx context.Context, sellerID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&SellerEarning{}).Where("seller_id = ?", sellerID).Count(&count).Error
	return count, err
}

func (g *settlementDAO) SumEarningsBySellerID(ctx context.Context, sellerID int64) (pending, available, reserved, paid int64, err error) {
	type row struct {
		Status    uint8
		Net       int64
		Remaining int64
		Reserved  int64
		Paid      int64
	}
	var rows []row
	err = g.db.WithContext(ctx).Model(&SellerEarning{}).
		Select("status, SUM(net_amount) AS net, SUM(net_amount - reserved_amount - paid_amount) AS remaining, SUM(reserved_amount) AS reserved, SUM(paid_amount) AS paid").
		Where("seller_id = ?", sellerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, 0, 0, err
	}
	for _, r := range rows {
		switch r.Status {
		case EarningStatusPending:
			pending += r.Net
		case EarningStatusAvailable:
			available += r.Remaining
			reserved += r.Reserved
			paid += r.Paid
		case EarningStatusPaid:
			paid += r.Net
		}
	}
	return pending, available, reserved, paid, nil
}

func (g *settlementDAO) PromoteDueEarnings(ctx context.Context, now int64, limit int) (int64, error) {
	res := g.db.WithContext(ctx).Model(&SellerEarning{}).
		Where("status = ? AND available_at <= ?", EarningStatusPending, now).
		Limit(limit).
		Updates(map[string]any{
			"status": EarningStatusAvailable,
			"utime":  now,
		})
	return res.RowsAffected, res.Error
}

func (g *settlementDAO) TryReserve(ctx context.Context, sellerID, amount int64) (int64, error) {
	var rid int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 行锁住卖家全部可提现收益, 串行化同一卖家的并发提现请求,
		// 避免两个请求同时用过期余额通过校验
		var earnings []SellerEarning
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("seller_id = ? AND status = ? AND net_amount - reserved_amount - paid_amount > 0", sellerID, EarningStatusAvailable).
			Order("id asc").
			Find(&earnings).Error; err != nil {
			return fmt.Errorf("锁定可提现收益失败: %w", err)
		}
		var total int64
		for _, e := range earnings {
			total += e.NetAmount - e.ReservedAmount - e.PaidAmount
		}
		if total < amount {
			return fmt.Errorf("%w: seller_id=%d, 可提现=%d, 申请=%d", ErrInsufficientBalance, sellerID, total, amount)
		}

		now := time.Now().UnixMilli()
		reservation := EarningReservation{
			SellerId: sellerID,
			Amount:   amount,
			Status:   ReservationStatusReserved,
			Ctime:    now,
			Utime:    now,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("创建预留记录失败: %w", err)
		}
		rid = reservation.Id

		// 从最早的收益开始消耗, 允许最后一条收益被部分消耗
		remaining := amount
		for i := range earnings {
			if remaining <= 0 {
				break
			}
			slice := earnings[i].NetAmount - earnings[i].ReservedAmount - earnings[i].PaidAmount
			if slice > remaining {
				slice = remaining
			}
			item := EarningReservationItem{
				ReservationId: rid,
				EarningId:     earnings[i].Id,
				Amount:        slice,
				Ctime:         now,
				Utime:         now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("创建预留明细失败: %w", err)
			}
			if err := tx.Model(&SellerEarning{}).
				Where("id = ?", earnings[i].Id).
				Updates(map[string]any{
					"reserved_amount": gorm.Expr("reserved_amount + ?", slice),
					"utime":           now,
				}).Error; err != nil {
				return fmt.Errorf("预留收益金额失败: %w", err)
			}
			remaining -= slice
		}
		return nil
	})
	return rid, err
}

func (g *settlementDAO) ConfirmReservation(ctx context.Context, sellerID, rid int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, items, err := g.lockReservation(tx, sellerID, rid)
		if err != nil {
			return err
		}
		// 提现审批改单失败后会带着同一个预留重试, 已确认的按成功处理
		if reservation.Status == ReservationStatusConfirmed {
			return nil
		}
		if reservation.Status != ReservationStatusReserved {
			return fmt.Errorf("%w: id=%d", ErrReservationNotFound, rid)
		}
		now := time.Now().UnixMilli()
		for _, item := range items {
			if err := tx.Model(&SellerEarning{}).
				Where("id = ?", item.EarningId).
				Updates(map[string]any{
					"reserved_amount": gorm.Expr("reserved_amount - ?", item.Amount),
					"paid_amount":     gorm.Expr("paid_amount + ?", item.Amount),
					"utime":           now,
				}).Error; err != nil {
				return fmt.Errorf("确认收益切片失败: %w", err)
			}
			// 完全消耗掉的收益进入终态
			if err := tx.Model(&SellerEarning{}).
				Where("id = ? AND paid_amount = net_amount", item.EarningId).
				Updates(map[string]any{
					"status": EarningStatusPaid,
					"utime":  now,
				}).Error; err != nil {
				return fmt.Errorf("更新收益状态失败: %w", err)
			}
		}
		return g.updateReservationStatus(tx, reservation.Id, ReservationStatusConfirmed, now)
	})
}

func (g *settlementDAO) CancelReservation(ctx context.Context, sellerID, rid int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, items, err := g.lockReservation(tx, sellerID, rid)
		if err != nil {
			return err
		}
		// 与确认对称: 已取消的预留重复取消按成功处理
		if reservation.Status == ReservationStatusCancelled {
			return nil
		}
		if reservation.Status != ReservationStatusReserved {
			return fmt.Errorf("%w: id=%d", ErrReservationNotFound, rid)
		}
		now := time.Now().UnixMilli()
		for _, item := range items {
			if err := tx.Model(&SellerEarning{}).
				Where("id = ?", item.EarningId).
				Updates(map[string]any{
					"reserved_amount": gorm.Expr("reserved_amount - ?", item.Amount),
					"utime":           now,
				}).Error; err != nil {
				return fmt.Errorf("释放收益切片失败: %w", err)
			}
		}
		return g.updateReservationStatus(tx, reservation.Id, ReservationStatusCancelled, now)
	})
}

func (g *settlementDAO) lockReservation(tx *gorm.DB, sellerID, rid int64) (EarningReservation, []EarningReservationItem, error) {
	var reservation EarningReservation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND seller_id = ?", rid, sellerID).
		First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EarningReservation{}, nil, fmt.Errorf("%w: id=%d", ErrReservationNotFound, rid)
	}
	if err != nil {
		return EarningReservation{}, nil, fmt.Errorf("锁定预留记录失败: %w", err)
	}
	var items []EarningReservationItem
	if err = tx.Where("reservation_id = ?", rid).Find(&items).Error; err != nil {
		return EarningReservation{}, nil, fmt.Errorf("查找预留明细失败: %w", err)
	}
	return reservation, items, nil
}

func (g *settlementDAO) updateReservationStatus(tx *gorm.DB, rid int64, status uint8, now int64) error {
	if err := tx.Model(&EarningReservation{}).
		Where("id = ?", rid).
		Updates(map[string]any{
			"status": status,
			"utime":  now,
		}).Error; err != nil {
		return fmt.Errorf("更新预留记录状态失败: %w", err)
	}
	return nil
}

const (
	EarningStatusPending   = 1
	EarningStatusAvailable = 2
	EarningStatusPaid      = 3

	ReservationStatusReserved  = 1
	ReservationStatusConfirmed = 2
	ReservationStatusCancelled = 3
)

type SubOrder struct {
	Id                int64  `gorm:"primaryKey;autoIncrement;comment:子订单自增ID"`
	SN                string `gorm:"column:sn;type:varchar(255);not null;uniqueIndex:uniq_sub_order_sn;comment:子订单序列号"`
	ParentOrderId     int64  `gorm:"not null;uniqueIndex:uniq_parent_seller,priority:1;comment:父订单自增ID"`
	ParentOrderSN     string `gorm:"column:parent_order_sn;type:varchar(255);not null;comment:父订单序列号"`
	SellerId          int64  `gorm:"not null;uniqueIndex:uniq_parent_seller,priority:2;index:idx_seller_id;comment:卖家ID"`
	TotalAmount       int64  `gorm:"not null;comment:子订单总价;单位为分"`
	FulfillmentStatus uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:履约状态 1=待发货 2=已发货 3=已送达 4=已完成"`
	Ctime             int64
	Utime             int64
}

type SubOrderItem struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:子订单商品自增ID"`
	SubOrderId int64  `gorm:"not null;index:idx_sub_order_id;comment:子订单自增ID"`
	ProductId  int64  `gorm:"not null;comment:商品ID"`
	SellerId   int64  `gorm:"not null;comment:卖家ID"`
	Name       string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Price      int64  `gorm:"not null;comment:成交单价;单位为分"`
	Quantity   int64  `gorm:"not null;comment:购买数量"`
	Ctime      int64
	Utime      int64
}

type SellerEarning struct {
	Id               int64 `gorm:"primaryKey;autoIncrement;comment:收益自增ID"`
	SellerId         int64 `gorm:"not null;index:idx_seller_status,priority:1;comment:卖家ID"`
	OrderId          int64 `gorm:"not null;index:idx_order_id;comment:父订单自增ID"`
	SubOrderId       int64 `gorm:"not null;uniqueIndex:uniq_sub_order_id;comment:子订单自增ID, 与收益一一对应"`
	GrossAmount      int64 `gorm:"not null;comment:卖家名下成交总额;单位为分"`
	CommissionRate   int64 `gorm:"not null;comment:佣金费率;万分比, 1000表示10%"`
	CommissionAmount int64 `gorm:"not null;comment:平台佣金;单位为分"`
	ProcessingFee    int64 `gorm:"not null;default:0;comment:支付通道手续费;单位为分"`
	NetAmount        int64 `gorm:"not null;comment:卖家净收益;单位为分"`
	ReservedAmount   int64 `gorm:"not null;default:0;comment:被进行中提现单预留的金额;单位为分"`
	PaidAmount       int64 `gorm:"not null;default:0;comment:已支付给卖家的金额;单位为分"`
	Status           uint8 `gorm:"type:tinyint unsigned;not null;default:1;index:idx_seller_status,priority:2;index:idx_status_available_at,priority:1;comment:收益状态 1=待结算 2=可提现 3=已支付"`
	AvailableAt      int64 `gorm:"not null;index:idx_status_available_at,priority:2;comment:保护期截止时间"`
	Ctime            int64
	Utime            int64
}

type EarningReservation struct {
	Id       int64 `gorm:"primaryKey;autoIncrement;comment:预留记录自增ID"`
	SellerId int64 `gorm:"not null;index:idx_seller_id;comment:卖家ID"`
	Amount   int64 `gorm:"not null;comment:预留总额;单位为分"`
	Status   uint8 `gorm:"type:tinyint unsigned;not null;default:1;comment:预留状态 1=预留中 2=已确认 3=已取消"`
	Ctime    int64
	Utime    int64
}

type EarningReservationItem struct {
	Id            int64 `gorm:"primaryKey;autoIncrement;comment:预留明细自增ID"`
	ReservationId int64 `gorm:"not null;index:idx_reservation_id;comment:预留记录自增ID"`
	EarningId     int64 `gorm:"not null;index:idx_earning_id;comment:收益自增ID"`
	Amount        int64 `gorm:"not null;comment:预留在该收益上的金额;单位为分"`
	Ctime         int64
	Utime         int64
}
