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
	"fmt"
	"time"

	"github.com/ecodeclub/wemall/internal/order/internal/domain"
	"github.com/ecodeclub/wemall/internal/order/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRecordNotFound          = repository.ErrRecordNotFound
	ErrInvalidStatusTransition = repository.ErrInvalidStatusTransition
)

//go:generate mockgen -source=./service.go -destination=../../mocks/order.mock.go -package=ordermocks -typed Service
type Service interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	ListOrdersByBuyerID(ctx context.Context, buyerID int64, offset, limit int) ([]domain.Order, int64, error)
	ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, int64, error)

	// MarkOrderPaid 支付成功回调, 只允许未支付订单转为已支付
	MarkOrderPaid(ctx context.Context, sn string, paymentSN string) (domain.Order, error)
	CompleteOrder(ctx context.Context, buyerID, orderID int64) error
	CancelOrder(ctx context.Context, buyerID, orderID int64) error
	FindExpiredOrders(ctx context.Context, ctime int64, offset, limit int) ([]domain.Order, error)
	CloseExpiredOrders(ctx context.Context, orderIDs []int64) error
}

func NewService(repo repository.OrderRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.OrderRepository
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	order.Status = domain.OrderStatusUnpaid
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindOrderBySN(ctx, sn)
}

func (s *service) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	return s.repo.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
}

func (s *service) ListOrdersByBuyerID(ctx context.Context, buyerID int64, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []domain.Order
		total  int64
	)
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListOrdersByBuyerID(ctx, buyerID, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrdersByBuyerID(ctx, buyerID)
		return err
	})
	return orders, total, eg.Wait()
}

func (s *service) ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []domain.Order
		total  int64
	)
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListOrders(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx)
		return err
	})
	return orders, total, eg.Wait()
}

func (s *service) MarkOrderPaid(ctx context.Context, sn string, paymentSN string) (domain.Order, error) {
	order, err := s.repo.FindOrderBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, fmt.Errorf("订单未找到: %w", err)
	}
	paidAt := time.Now().UnixMilli()
	if err = s.repo.MarkPaid(ctx, order.ID, paymentSN, paidAt); err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatusPaid
	order.PaidAt = paidAt
	order.PaymentSN = paymentSN
	return order, nil
}

func (s *service) CompleteOrder(ctx context.Context, buyerID, orderID int64) error {
	return s.repo.CompleteOrder(ctx, buyerID, orderID)
}

func (s *service) CancelOrder(ctx context.Context, buyerID, orderID int64) error {
	return s.repo.CancelOrder(ctx, buyerID, orderID)
}

func (s *service) FindExpiredOrders(ctx context.Context, ctime int64, offset, limit int) ([]domain.Order, error) {
	return s.repo.FindExpiredOrders(ctx, ctime, offset, limit)
}

func (s *service) CloseExpiredOrders(ctx context.Context, orderIDs []int64) error {
	return s.repo.CloseExpiredOrders(ctx, orderIDs)
}
