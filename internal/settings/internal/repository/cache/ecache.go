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

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/wemall/internal/settings/internal/domain"
)

// 配置几乎只读, 短TTL兜底管理端更新后的旧缓存
const settingTTL = time.Minute

type SettingCache interface {
	GetCommissionSetting(ctx context.Context) (domain.CommissionSetting, error)
	SetCommissionSetting(ctx context.Context, s domain.CommissionSetting) error
	GetPayoutSetting(ctx context.Context) (domain.PayoutSetting, error)
	SetPayoutSetting(ctx context.Context, s domain.PayoutSetting) error
}

type settingECache struct {
	ec ecache.Cache
}

func NewSettingECache(ec ecache.Cache) SettingCache {
	return &settingECache{
		ec: &ecache.NamespaceCache{
			Namespace: "settings:",
			C:         ec,
		},
	}
}

func (c *settingECache) GetCommissionSetting(ctx context.Context) (domain.CommissionSetting, error) {
	val, err := c.ec.Get(ctx, "commission").AsString()
	if err != nil {
		return domain.CommissionSetting{}, err
	}
	var res domain.CommissionSetting
	err = json.Unmarshal([]byte(val), &res)
	return res, err
}

func (c *settingECache) SetCommissionSetting(ctx context.Context, s domain.CommissionSetting) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.ec.Set(ctx, "commission", string(data), settingTTL)
}

func (c *settingECache) GetPayoutSetting(ctx context.Context) (domain.PayoutSetting, error) {
	val, err := c.ec.Get(ctx, "payout").AsString()
	if err != nil {
		return domain.PayoutSetting{}, err
	}
	var res domain.PayoutSetting
	err = json.Unmarshal([]byte(val), &res)
	return res, err
}

func (c *settingECache) SetPayoutSetting(ctx context.Context, s domain.PayoutSetting) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.ec.Set(ctx, "payout", string(data), settingTTL)
}
