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
	"errors"

	"github.com/ecodeclub/wemall/internal/settings/internal/domain"
	"github.com/ecodeclub/wemall/internal/settings/internal/repository/cache"
	"github.com/ecodeclub/wemall/internal/settings/internal/repository/dao"
)

var ErrRecordNotFound = dao.ErrRecordNotFound

type SettingRepository interface {
	GetCommissionSetting(ctx context.Context) (domain.CommissionSetting, error)
	SaveCommissionSetting(ctx context.Context, s domain.CommissionSetting) error
	GetSellerRate(ctx context.Context, sellerID int64) (domain.SellerRate, error)
	SaveSellerRate(ctx context.Context, r domain.SellerRate) error
	GetPayoutSetting(ctx context.Context) (domain.PayoutSetting, error)
	SavePayoutSetting(ctx context.Context, s domain.PayoutSetting) error
}

func NewSettingRepository(d dao.SettingDAO, c cache.SettingCache) SettingRepository {
	return &settingRepository{dao: d, cache: c}
}

type settingRepository struct {
	dao   dao.SettingDAO
	cache cache.SettingCache
}

func (r *settingRepository) GetCommissionSetting(ctx context.Context) (domain.CommissionSetting, error) {
	if s, err := r.cache.GetCommissionSetting(ctx); err == nil {
		return s, nil
	}
	entity, err := r.dao.GetCommissionSetting(ctx)
	if errors.Is(err, dao.ErrRecordNotFound) {
		// 尚未配置过, 返回内置默认值
		return domain.CommissionSetting{DefaultRateBps: 1000}, nil
	}
	if err != nil {
		return domain.CommissionSetting{}, err
	}
	res := domain.CommissionSetting{DefaultRateBps: entity.DefaultRate, Utime: entity.Utime}
	// 缓存失败不影响主流程
	_ = r.cache.SetCommissionSetting(ctx, res)
	return res, nil
}

func (r *settingRepository) SaveCommissionSetting(ctx context.Context, s domain.CommissionSetting) error {
	err := r.dao.SaveCommissionSetting(ctx, dao.CommissionSetting{DefaultRate: s.DefaultRateBps})
	if err != nil {
		return err
	}
	return r.cache.SetCommissionSetting(ctx, s)
}

func (r *settingRepository) GetSellerRate(ctx context.Context, sellerID int64) (domain.SellerRate, error) {
	entity, err := r.dao.GetSellerRate(ctx, sellerID)
	if err != nil {
		return domain.SellerRate{}, err
	}
	return domain.SellerRate{SellerID: entity.SellerId, RateBps: entity.Rate, Utime: entity.Utime}, nil
}

func (r *settingRepository) SaveSellerRate(ctx context.Context, rate domain.SellerRate) error {
	return r.dao.SaveSellerRate(ctx, dao.SellerCommissionRate{SellerId: rate.SellerID, Rate: rate.RateBps})
}

func (r *settingRepository) GetPayoutSetting(ctx context.Context) (domain.PayoutSetting, error) {
	if s, err := r.cache.GetPayoutSetting(ctx); err == nil {
		return s, nil
	}
	entity, err := r.dao.GetPayoutSetting(ctx)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.PayoutSetting{MinPayoutAmount: 1000, HoldingPeriodDays: 7}, nil
	}
	if err != nil {
		return domain.PayoutSetting{}, err
	}
	res := domain.PayoutSetting{
		MinPayoutAmount:      entity.MinPayoutAmount,
		HoldingPeriodDays:    entity.HoldingPeriodDays,
		ProcessingFeeRateBps: entity.ProcessingFeeRate,
		ProcessingFeeFixed:   entity.ProcessingFeeFixed,
		Utime:                entity.Utime,
	}
	_ = r.cache.SetPayoutSetting(ctx, res)
	return res, nil
}

func (r *settingRepository) SavePayoutSetting(ctx context.Context, s domain.PayoutSetting) error {
	err := r.dao.SavePayoutSetting(ctx, dao.PayoutSetting{
		MinPayoutAmount:    s.MinPayoutAmount,
		HoldingPeriodDays:  s.HoldingPeriodDays,
		ProcessingFeeRate:  s.ProcessingFeeRateBps,
		ProcessingFeeFixed: s.ProcessingFeeFixed,
	})
	if err != nil {
		return err
	}
	return r.cache.SetPayoutSetting(ctx, s)
}
