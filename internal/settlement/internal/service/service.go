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
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement/internal/domain"
	"github.com/ecodeclub/wemall/internal/settlement/internal/event"
	"github.com/ecodeclub/wemall/internal/settlement/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

var (
	// ErrMissingSellerID 订单行缺失卖家ID, 属于数据完整性问题,
	// 整单拆分失败, 必须人工修复数据后重试, 绝不能悄悄丢行
	ErrMissingSellerID     = errors.New("订单行缺失卖家ID")
	ErrOrderAlreadySplit   = repository.ErrOrderAlreadySplit
	ErrInsufficientBalance = repository.ErrInsufficientBalance
	ErrReservationNotFound = repository.ErrReservationNotFound
	ErrNegativeNetAmount   = domain.ErrNegativeNetAmount
)

//go:generate mockgen -source=./service.go -destination=../../mocks/settlement.mock.go -package=settlementmocks -typed Service
type Service interface {
	// SplitOrder 把已支付的父订单按卖家拆成子订单, 并为每个子订单创建一条收益记录。
	// 可安全重试: 已拆过单返回 ErrOrderAlreadySplit
	SplitOrder(ctx context.Context, order domain.OrderInfo) ([]domain.SubOrder, error)
	FindSubOrdersByParentOrderID(ctx context.Context, parentOrderID int64) ([]domain.SubOrder, error)
	ListSubOrdersBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.SubOrder, int64, error)
	UpdateFulfillmentStatus(ctx context.Context, sellerID, subOrderID int64, status domain.FulfillmentStatus) error

	GetBalance(ctx context.Context, sellerID int64) (domain.Balance, error)
	ListEarningsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.Earning, int64, error)
	// PromoteDueEarnings 把保护期已过的收益置为可提现, 由定时任务驱动
	PromoteDueEarnings(ctx context.Context, now time.Time, limit int) (int64, error)

	// TryReserveEarnings 在一个事务内校验余额并预留金额, 串行化同一卖家的并发请求
	TryReserveEarnings(ctx context.Context, sellerID, amount int64) (int64, error)
	// ConfirmReservation 幂等, 已确认的预留重复确认按成功处理
	ConfirmReservation(ctx context.Context, sellerID, rid int64) error
	// CancelReservation 幂等, 已取消的预留重复取消按成功处理
	CancelReservation(ctx context.Context, sellerID, rid int64) error
}

func NewService(repo repository.SettlementRepository,
	settingsSvc settings.Service,
	snGenerator *sequencenumber.Generator,
	producer event.EarningEventProducer) Service {
	return &service{
		repo:        repo,
		settingsSvc: settingsSvc,
		snGenerator: snGenerator,
		producer:    producer,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	repo        repository.SettlementRepository
	settingsSvc settings.Service
	snGenerator *sequencenumber.Generator
	producer    event.EarningEventProducer
	logger      *elog.Component
}

func (s *service) SplitOrder(ctx context.Context, order domain.OrderInfo) ([]domain.SubOrder, error) {
	groups, err := s.groupBySeller(order)
	if err != nil {
		return nil, err
	}

	payoutSetting, err := s.settingsSvc.GetPayoutSetting(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取结算配置失败: %w", err)
	}
	availableAt := time.Now().Add(time.Duration(payoutSetting.HoldingPeriodDays) * 24 * time.Hour).UnixMilli()
	fee := domain.FeeModel{
		RateBps:     payoutSetting.ProcessingFeeRateBps,
		FixedAmount: payoutSetting.ProcessingFeeFixed,
	}

	subOrders := make([]domain.SubOrder, 0, len(groups))
	earnings := make([]domain.Earning, 0, len(groups))
	for _, group := range groups {
		sn, er := s.snGenerator.Generate(group.sellerID)
		if er != nil {
			return nil, fmt.Errorf("生成子订单序列号失败: %w", er)
		}
		rate, er := s.settingsSvc.CommissionRateFor(ctx, group.sellerID)
		if er != nil {
			return nil, fmt.Errorf("获取卖家佣金费率失败: %w", er)
		}
		amounts, er := domain.CalculateAmounts(group.total, rate, fee)
		if er != nil {
			return nil, fmt.Errorf("计算卖家收益失败: seller_id=%d: %w", group.sellerID, er)
		}
		subOrders = append(subOrders, domain.SubOrder{
			SN:                sn,
			ParentOrderID:     order.OrderID,
			ParentOrderSN:     order.OrderSN,
			SellerID:          group.sellerID,
			TotalAmount:       group.total,
			FulfillmentStatus: domain.FulfillmentStatusPending,
			Items:             group.items,
		})
		earnings = append(earnings, domain.Earning{
			SellerID:         group.sellerID,
			OrderID:          order.OrderID,
			GrossAmount:      amounts.GrossAmount,
			CommissionRate:   rate,
			CommissionAmount: amounts.CommissionAmount,
			ProcessingFee:    amounts.ProcessingFee,
			NetAmount:        amounts.NetAmount,
			Status:           domain.EarningStatusPending,
			AvailableAt:      availableAt,
		})
	}

	err = s.repo.CreateSubOrdersAndEarnings(ctx, order.OrderID, subOrders, earnings)
	if err != nil {
		return nil, err
	}

	s.produceEarningEvents(ctx, order, earnings)
	return subOrders, nil
}

type sellerGroup struct {
	sellerID int64
	total    int64
	items    []domain.SubOrderItem
}

func (s *service) groupBySeller(order domain.OrderInfo) ([]sellerGroup, error) {
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("订单没有商品: order_id=%d", order.OrderID)
	}
	grouped := make(map[int64]*sellerGroup, 4)
	for _, item := range order.Items {
		if item.SellerID <= 0 {
			return nil, fmt.Errorf("%w: order_id=%d, product_id=%d", ErrMissingSellerID, order.OrderID, item.ProductID)
		}
		g, ok := grouped[item.SellerID]
		if !ok {
			g = &sellerGroup{sellerID: item.SellerID}
			grouped[item.SellerID] = g
		}
		g.total += item.Price * item.Quantity
		g.items = append(g.items, domain.SubOrderItem{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	res := make([]sellerGroup, 0, len(grouped))
	for _, g := range grouped {
		res = append(res, *g)
	}
	// map 遍历无序, 按卖家ID排序保证子订单创建顺序稳定
	sort.Slice(res, func(i, j int) bool {
		return res[i].sellerID < res[j].sellerID
	})
	return res, nil
}

func (s *service) produceEarningEvents(ctx context.Context, order domain.OrderInfo, earnings []domain.Earning) {
	for _, e := range earnings {
		evt := event.EarningEvent{
			OrderSN:   order.OrderSN,
			SellerID:  e.SellerID,
			NetAmount: e.NetAmount,
		}
		if err := s.producer.Produce(ctx, evt); err != nil {
			// 通知属于外部协作方, 发送失败只记日志, 不影响拆单结果
			s.logger.Error("发送收益事件失败",
				elog.FieldErr(err),
				elog.Int64("seller_id", e.SellerID),
				elog.String("order_sn", order.OrderSN))
		}
	}
}

func (s *service) FindSubOrdersByParentOrderID(ctx context.Context, parentOrderID int64) ([]domain.SubOrder, error) {
	return s.repo.FindSubOrdersByParentOrderID(ctx, parentOrderID)
}

func (s *service) ListSubOrdersBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.SubOrder, int64, error) {
	subOrders, err := s.repo.ListSubOrdersBySellerID(ctx, sellerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.TotalSubOrdersBySellerID(ctx, sellerID)
	return subOrders, total, err
}

func (s *service) UpdateFulfillmentStatus(ctx context.Context, sellerID, subOrderID int64, status domain.FulfillmentStatus) error {
	return s.repo.UpdateFulfillmentStatus(ctx, sellerID, subOrderID, status)
}

func (s *service) GetBalance(ctx context.Context, sellerID int64) (domain.Balance, error) {
	return s.repo.GetBalance(ctx, sellerID)
}

func (s *service) ListEarningsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.Earning, int64, error) {
	earnings, err := s.repo.ListEarningsBySellerID(ctx, sellerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.TotalEarningsBySellerID(ctx, sellerID)
	return earnings, total, err
}

func (s *service) PromoteDueEarnings(ctx context.Context, now time.Time, limit int) (int64, error) {
	return s.repo.PromoteDueEarnings(ctx, now.UnixMilli(), limit)
}

func (s *service) TryReserveEarnings(ctx context.Context, sellerID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("预留金额非法: %d", amount)
	}
	return s.repo.TryReserve(ctx, sellerID, amount)
}

func (s *service) ConfirmReservation(ctx context.Context, sellerID, rid int64) error {
	return s.repo.ConfirmReservation(ctx, sellerID, rid)
}

func (s *service) CancelReservation(ctx context.Context, sellerID, rid int64) error {
	return s.repo.CancelReservation(ctx, sellerID, rid)
}
