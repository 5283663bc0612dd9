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

	"github.com/ecodeclub/wemall/internal/payout/internal/domain"
	"github.com/ecodeclub/wemall/internal/payout/internal/event"
	"github.com/ecodeclub/wemall/internal/payout/internal/repository"
	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/gotomicro/ego/core/elog"
)

var (
	// ErrBelowMinimumPayout 提现金额低于最低提现门槛
	ErrBelowMinimumPayout = errors.New("提现金额低于最低提现门槛")
	// ErrInvalidPayoutMethod 不支持的收款方式
	ErrInvalidPayoutMethod     = errors.New("收款方式非法")
	ErrInsufficientBalance     = settlement.ErrInsufficientBalance
	ErrRecordNotFound          = repository.ErrRecordNotFound
	ErrInvalidStatusTransition = repository.ErrInvalidStatusTransition
)

//go:generate mockgen -source=./service.go -destination=../../mocks/payout.mock.go -package=payoutmocks -typed Service
type Service interface {
	// RequestPayout 申请提现: 校验门槛后在结算侧预留金额, 再落库申请单。
	// 余额不足返回 ErrInsufficientBalance
	RequestPayout(ctx context.Context, sellerID, amount int64, method domain.PayoutMethod, account string) (domain.PayoutRequest, error)
	ListPayoutsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.PayoutRequest, int64, error)
	ListPendingPayouts(ctx context.Context, offset, limit int) ([]domain.PayoutRequest, int64, error)

	// Approve 审核通过: 确认预留, 预留切片转为已支付
	Approve(ctx context.Context, id int64) error
	// Reject 审核拒绝: 取消预留, 金额退回可提现余额
	Reject(ctx context.Context, id int64, reason string) error
}

func NewService(repo repository.PayoutRepository,
	settlementSvc settlement.Service,
	settingsSvc settings.Service,
	snGenerator *sequencenumber.Generator,
	producer event.PayoutEventProducer) Service {
	return &service{
		repo:          repo,
		settlementSvc: settlementSvc,
		settingsSvc:   settingsSvc,
		snGenerator:   snGenerator,
		producer:      producer,
		logger:        elog.DefaultLogger,
	}
}

type service struct {
	repo          repository.PayoutRepository
	settlementSvc settlement.Service
	settingsSvc   settings.Service
	snGenerator   *sequencenumber.Generator
	producer      event.PayoutEventProducer
	logger        *elog.Component
}

func (s *service) RequestPayout(ctx context.Context, sellerID, amount int64, method domain.PayoutMethod, account string) (domain.PayoutRequest, error) {
	if !method.IsValid() {
		return domain.PayoutRequest{}, fmt.Errorf("%w: %d", ErrInvalidPayoutMethod, method)
	}
	setting, err := s.settingsSvc.GetPayoutSetting(ctx)
	if err != nil {
		return domain.PayoutRequest{}, fmt.Errorf("获取提现配置失败: %w", err)
	}
	if amount < setting.MinPayoutAmount {
		return domain.PayoutRequest{}, fmt.Errorf("%w: 申请=%d, 门槛=%d", ErrBelowMinimumPayout, amount, setting.MinPayoutAmount)
	}

	sn, err := s.snGenerator.Generate(sellerID)
	if err != nil {
		return domain.PayoutRequest{}, fmt.Errorf("生成提现申请序列号失败: %w", err)
	}

	// 先在结算侧预留金额, 串行化同一卖家的并发申请
	rid, err := s.settlementSvc.TryReserveEarnings(ctx, sellerID, amount)
	if err != nil {
		return domain.PayoutRequest{}, err
	}

	p := domain.PayoutRequest{
		SN:            sn,
		SellerID:      sellerID,
		Amount:        amount,
		Method:        method,
		Account:       account,
		ReservationID: rid,
		Status:        domain.PayoutStatusPending,
	}
	pid, err := s.repo.Create(ctx, p)
	if err != nil {
		// 落库失败要释放预留, 否则金额被永久占用
		if er := s.settlementSvc.CancelReservation(ctx, sellerID, rid); er != nil {
			s.logger.Error("回滚收益预留失败",
				elog.FieldErr(er),
				elog.Int64("seller_id", sellerID),
				elog.Int64("reservation_id", rid))
		}
		return domain.PayoutRequest{}, fmt.Errorf("创建提现申请失败: %w", err)
	}
	p.ID = pid
	return p, nil
}

func (s *service) ListPayoutsBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.PayoutRequest, int64, error) {
	ps, err := s.repo.ListBySellerID(ctx, sellerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.TotalBySellerID(ctx, sellerID)
	return ps, total, err
}

func (s *service) ListPendingPayouts(ctx context.Context, offset, limit int) ([]domain.PayoutRequest, int64, error) {
	ps, err := s.repo.ListByStatus(ctx, domain.PayoutStatusPending, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.TotalByStatus(ctx, domain.PayoutStatusPending)
	return ps, total, err
}

func (s *service) Approve(ctx context.Context, id int64) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("提现申请未找到: %w", err)
	}
	if p.Status != domain.PayoutStatusPending {
		return fmt.Errorf("%w: id=%d", ErrInvalidStatusTransition, id)
	}
	// 先确认预留再改申请单状态: 确认是幂等的, 反过来会在确认失败时
	// 留下已打款但余额未扣减的申请单
	if err = s.settlementSvc.ConfirmReservation(ctx, p.SellerID, p.ReservationID); err != nil {
		return fmt.Errorf("确认收益预留失败: %w", err)
	}
	if err = s.repo.UpdateStatus(ctx, id, domain.PayoutStatusApproved, ""); err != nil {
		return err
	}
	p.Status = domain.PayoutStatusApproved
	s.producePayoutEvent(ctx, p)
	return nil
}

func (s *service) Reject(ctx context.Context, id int64, reason string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("提现申请未找到: %w", err)
	}
	if p.Status != domain.PayoutStatusPending {
		return fmt.Errorf("%w: id=%d", ErrInvalidStatusTransition, id)
	}
	if err = s.settlementSvc.CancelReservation(ctx, p.SellerID, p.ReservationID); err != nil {
		return fmt.Errorf("取消收益预留失败: %w", err)
	}
	if err = s.repo.UpdateStatus(ctx, id, domain.PayoutStatusRejected, reason); err != nil {
		return err
	}
	p.Status = domain.PayoutStatusRejected
	s.producePayoutEvent(ctx, p)
	return nil
}

func (s *service) producePayoutEvent(ctx context.Context, p domain.PayoutRequest) {
	evt := event.PayoutEvent{
		SN:       p.SN,
		SellerID: p.SellerID,
		Amount:   p.Amount,
		Status:   p.Status.ToUint8(),
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		// 通知属于外部协作方, 发送失败只记日志
		s.logger.Error("发送提现事件失败",
			elog.FieldErr(err),
			elog.String("payout_sn", p.SN))
	}
}
