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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/wemall/internal/settlement/internal/domain"
	"github.com/ecodeclub/wemall/internal/settlement/internal/repository/dao"
)

var (
	ErrOrderAlreadySplit   = dao.ErrOrderAlreadySplit
	ErrInsufficientBalance = dao.ErrInsufficientBalance
	ErrReservationNotFound = dao.ErrReservationNotFound
	ErrRecordNotFound      = dao.ErrRecordNotFound
)

type SettlementRepository interface {
	CreateSubOrdersAndEarnings(ctx context.Context, parentOrderID int64, subOrders []domain.SubOrder, earnings []domain.Earning) error
	FindSubOrdersByParentOrderID(ctx context.Context, parentOrderID int64) ([]domain.SubOrder, error)
	ListSubOrdersBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.SubOrder, error)
	TotalSubOrdersBySellerID(ctx context.Context, sellerID int64) (int64, error)
	UpdateFulfillmentStatus(ctx context.Context, sellerID, subOrderID int64, status domain.FulfillmentStatus) error

	ListEarningsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.Earning, error)
	TotalEarningsBySellerID(ctx context.Context, sellerID int64) (int64, error)
	GetBalance(ctx context.Context, sellerID int64) (domain.Balance, error)
	PromoteDueEarnings(ctx context.Context, now int64, limit int) (int64, error)

	TryReserve(ctx context.Context, sellerID, amount int64) (int64, error)
	ConfirmReservation(ctx context.Context, sellerID, rid int64) error
	CancelReservation(ctx context.Context, sellerID, rid int64) error
}

func NewSettlementRepository(d dao.SettlementDAO) SettlementRepository {
	return &settlementRepository{dao: d}
}

type settlementRepository struct {
	dao dao.SettlementDAO
}

func (r *settlementRepository) CreateSubOrdersAndEarnings(ctx context.Context, parentOrderID int64, subOrders []domain.SubOrder, earnings []domain.Earning) error {
	items := make(map[int64][]dao.SubOrderItem, len(subOrders))
	entities := slice.Map(subOrders, func(idx int, src domain.SubOrder) dao.SubOrder {
		items[src.SellerID] = slice.Map(src.Items, func(idx int, item domain.SubOrderItem) dao.SubOrderItem {
			return dao.SubOrderItem{
				ProductId: item.ProductID,
				SellerId:  item.SellerID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			}
		})
		return r.toSubOrderEntity(src)
	})
	earningEntities := slice.Map(earnings, func(idx int, src domain.Earning) dao.SellerEarning {
		return r.toEarningEntity(src)
	})
	return r.dao.CreateSubOrdersAndEarnings(ctx, parentOrderID, entities, items, earningEntities)
}

func (r *settlementRepository) FindSubOrdersByParentOrderID(ctx context.Context, parentOrderID int64) ([]domain.SubOrder, error) {
	subOrders, err := r.dao.FindSubOrdersByParentOrderID(ctx, parentOrderID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.SubOrder, 0, len(subOrders))
	for _, so := range subOrders {
		items, er := r.dao.FindSubOrderItems(ctx, so.Id)
		if er != nil {
			return nil, er
		}
		res = append(res, r.toSubOrderDomain(so, items))
	}
	return res, nil
}

func (r *settlementRepository) ListSubOrdersBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.SubOrder, error) {
	subOrders, err := r.dao.ListSubOrdersBySellerID(ctx, sellerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(subOrders, func(idx int, src dao.SubOrder) domain.SubOrder {
		return r.toSubOrderDomain(src, nil)
	}), nil
}

func (r *settlementRepository) TotalSubOrdersBySellerID(ctx context.Context, sellerID int64) (int64, error) {
	return r.dao.CountSubOrdersBySellerID(ctx, sellerID)
}

func (r *settlementRepository) UpdateFulfillmentStatus(ctx context.Context, sellerID, subOrderID int64, status domain.FulfillmentStatus) error {
	return r.dao.UpdateFulfillmentStatus(ctx, sellerID, subOrderID, status.ToUint8())
}

func (r *settlementRepository) ListEarningsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.Earning, error) {
	earnings, err := r.dao.ListEarningsBySellerID(ctx, sellerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(earnings, func(idx int, src dao.SellerEarning) domain.Earning {
		return r.toEarningDomain(src)
	}), nil
}

func (r *settlementRepository) TotalEarningsBySellerID(ctx context.Context, sellerID int64) (int64, error) {
	return r.dao.CountEarningsBySellerID(ctx, sellerID)
}

func (r *settlementRepository) GetBalance(ctx context.Context, sellerID int64) (domain.Balance, error) {
	pending, available, reserved, paid, err := r.dao.SumEarningsBySellerID(ctx, sellerID)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.Balance{
		SellerID:  sellerID,
		Available: available,
		Pending:   pending,
		Reserved:  reserved,
		Paid:      paid,
		Total:     pending + available + reserved + paid,
	}, nil
}

func (r *settlementRepository) PromoteDueEarnings(ctx context.Context, now int64, limit int) (int64, error) {
	return r.dao.PromoteDueEarnings(ctx, now, limit)
}

func (r *settlementRepository) TryReserve(ctx context.Context, sellerID, amount int64) (int64, error) {
	return r.dao.TryReserve(ctx, sellerID, amount)
}

func (r *settlementRepository) ConfirmReservation(ctx context.Context, sellerID, rid int64) error {
	return r.dao.ConfirmReservation(ctx, sellerID, rid)
}

func (r *settlementRepository) CancelReservation(ctx context.Context, sellerID, rid int64) error {
	return r.dao.CancelReservation(ctx, sellerID, rid)
}

func (r *settlementRepository) toSubOrderEntity(src domain.SubOrder) dao.SubOrder {
	return dao.SubOrder{
		Id:                src.ID,
		SN:                src.SN,
		ParentOrderId:     src.ParentOrderID,
		ParentOrderSN:     src.ParentOrderSN,
		SellerId:          src.SellerID,
		TotalAmount:       src.TotalAmount,
		FulfillmentStatus: src.FulfillmentStatus.ToUint8(),
	}
}

func (r *settlementRepository) toSubOrderDomain(src dao.SubOrder, items []dao.SubOrderItem) domain.SubOrder {
	return domain.SubOrder{
		ID:                src.Id,
		SN:                src.SN,
		ParentOrderID:     src.ParentOrderId,
		ParentOrderSN:     src.ParentOrderSN,
		SellerID:          src.SellerId,
		TotalAmount:       src.TotalAmount,
		FulfillmentStatus: domain.FulfillmentStatus(src.FulfillmentStatus),
		Items: slice.Map(items, func(idx int, item dao.SubOrderItem) domain.SubOrderItem {
			return domain.SubOrderItem{
				ProductID: item.ProductId,
				SellerID:  item.SellerId,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			}
		}),
		Ctime: src.Ctime,
		Utime: src.Utime,
	}
}

func (r *settlementRepository) toEarningEntity(src domain.Earning) dao.SellerEarning {
	return dao.SellerEarning{
		Id:               src.ID,
		SellerId:         src.SellerID,
		OrderId:          src.OrderID,
		SubOrderId:       src.SubOrderID,
		GrossAmount:      src.GrossAmount,
		CommissionRate:   src.CommissionRate,
		CommissionAmount: src.CommissionAmount,
		ProcessingFee:    src.ProcessingFee,
		NetAmount:        src.NetAmount,
		ReservedAmount:   src.ReservedAmount,
		PaidAmount:       src.PaidAmount,
		Status:           src.Status.ToUint8(),
		AvailableAt:      src.AvailableAt,
	}
}

func (r *settlementRepository) toEarningDomain(src dao.SellerEarning) domain.Earning {
	return domain.Earning{
		ID:               src.Id,
		SellerID:         src.SellerId,
		OrderID:          src.OrderId,
		SubOrderID:       src.SubOrderId,
		GrossAmount:      src.GrossAmount,
		CommissionRate:   src.CommissionRate,
		CommissionAmount: src.CommissionAmount,
		ProcessingFee:    src.ProcessingFee,
		NetAmount:        src.NetAmount,
		ReservedAmount:   src.ReservedAmount,
		PaidAmount:       src.PaidAmount,
		Status:           domain.EarningStatus(src.Status),
		AvailableAt:      src.AvailableAt,
		Ctime:            src.Ctime,
		Utime:            src.Utime,
	}
}
