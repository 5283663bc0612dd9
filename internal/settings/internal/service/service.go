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

	"github.com/ecodeclub/wemall/internal/settings/internal/domain"
	"github.com/ecodeclub/wemall/internal/settings/internal/repository"
)

var ErrInvalidRate = errors.New("佣金费率非法")

type Service interface {
	GetCommissionSetting(ctx context.Context) (domain.CommissionSetting, error)
	SaveCommissionSetting(ctx context.Context, s domain.CommissionSetting) error
	// CommissionRateFor 解析卖家适用的佣金费率: 卖家专属费率优先, 否则用默认费率
	CommissionRateFor(ctx context.Context, sellerID int64) (int64, error)
	SaveSellerRate(ctx context.Context, r domain.SellerRate) error
	GetPayoutSetting(ctx context.Context) (domain.PayoutSetting, error)
	SavePayoutSetting(ctx context.Context, s domain.PayoutSetting) error
}

func NewService(repo repository.SettingRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.SettingRepository
}

func (s *service) GetCommissionSetting(ctx context.Context) (domain.CommissionSetting, error) {
	return s.repo.GetCommissionSetting(ctx)
}

func (s *service) SaveCommissionSetting(ctx context.Context, setting domain.CommissionSetting) error {
	if setting.DefaultRateBps < 0 || setting.DefaultRateBps > 10000 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, setting.DefaultRateBps)
	}
	return s.repo.SaveCommissionSetting(ctx, setting)
}

func (s *service) CommissionRateFor(ctx context.Context, sellerID int64) (int64, error) {
	rate, err := s.repo.GetSellerRate(ctx, sellerID)
	if err == nil {
		return rate.RateBps, nil
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return 0, fmt.Errorf("查找卖家费率失败: %w", err)
	}
	setting, err := s.repo.GetCommissionSetting(ctx)
	if err != nil {
		return 0, fmt.Errorf("查找默认佣金费率失败: %w", err)
	}
	return setting.DefaultRateBps, nil
}

func (s *service) SaveSellerRate(ctx context.Context, r domain.SellerRate) error {
	if r.RateBps < 0 || r.RateBps > 10000 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, r.RateBps)
	}
	return s.repo.SaveSellerRate(ctx, r)
}

func (s *service) GetPayoutSetting(ctx context.Context) (domain.PayoutSetting, error) {
	return s.repo.GetPayoutSetting(ctx)
}

func (s *service) SavePayoutSetting(ctx context.Context, setting domain.PayoutSetting) error {
	if setting.MinPayoutAmount < 0 || setting.HoldingPeriodDays < 0 {
		return fmt.Errorf("%w", ErrInvalidRate)
	}
	return s.repo.SavePayoutSetting(ctx, setting)
}
