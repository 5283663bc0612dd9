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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

// 配置表均为单行表, 固定主键
const settingID = 1

type SettingDAO interface {
	GetCommissionSetting(ctx context.Context) (CommissionSetting, error)
	SaveCommissionSetting(ctx context.Context, s CommissionSetting) error
	GetSellerRate(ctx context.Context, sellerID int64) (SellerCommissionRate, error)
	SaveSellerRate(ctx context.Context, r SellerCommissionRate) error
	GetPayoutSetting(ctx context.Context) (PayoutSetting, error)
	SavePayoutSetting(ctx context.Context, s PayoutSetting) error
}

type settingDAO struct {
	db *egorm.Component
}

func NewSettingGORMDAO(db *egorm.Component) SettingDAO {
	return &settingDAO{db: db}
}

func (g *settingDAO) GetCommissionSetting(ctx context.Context) (CommissionSetting, error) {
	var res CommissionSetting
	err := g.db.WithContext(ctx).First(&res, "id = ?", settingID).Error
	return res, err
}

func (g *settingDAO) SaveCommissionSetting(ctx context.Context, s CommissionSetting) error {
	now := time.Now().UnixMilli()
	s.Id = settingID
	s.Ctime, s.Utime = now, now
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"default_rate", "utime"}),
	}).Create(&s).Error
}

func (g *settingDAO) GetSellerRate(ctx context.Context, sellerID int64) (SellerCommissionRate, error) {
	var res SellerCommissionRate
	err := g.db.WithContext(ctx).First(&res, "seller_id = ?", sellerID).Error
	return res, err
}

func (g *settingDAO) SaveSellerRate(ctx context.Context, r SellerCommissionRate) error {
	now := time.Now().UnixMilli()
	r.Ctime, r.Utime = now, now
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seller_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "utime"}),
	}).Create(&r).Error
}

func (g *settingDAO) GetPayoutSetting(ctx context.Context) (PayoutSetting, error) {
	var res PayoutSetting
	err := g.db.WithContext(ctx).First(&res, "id = ?", settingID).Error
	return res, err
}

func (g *settingDAO) SavePayoutSetting(ctx context.Context, s PayoutSetting) error {
	now := time.Now().UnixMilli()
	s.Id = settingID
	s.Ctime, s.Utime = now, now
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"min_payout_amount", "holding_period_days", "processing_fee_rate", "processing_fee_fixed", "utime"}),
	}).Create(&s).Error
}

type CommissionSetting struct {
	Id          int64 `gorm:"primaryKey;comment:固定为1的单行配置"`
	DefaultRate int64 `gorm:"column:default_rate;not null;default:1000;comment:默认佣金费率;万分比"`
	Ctime       int64
	Utime       int64
}

type SellerCommissionRate struct {
	Id       int64 `gorm:"primaryKey;autoIncrement;comment:卖家费率自增ID"`
	SellerId int64 `gorm:"not null;uniqueIndex:uniq_seller_id;comment:卖家ID"`
	Rate     int64 `gorm:"column:rate;not null;comment:卖家专属佣金费率;万分比"`
	Ctime    int64
	Utime    int64
}

type PayoutSetting struct {
	Id                 int64 `gorm:"primaryKey;comment:固定为1的单行配置"`
	MinPayoutAmount    int64 `gorm:"not null;default:1000;comment:最小提现金额;单位为分"`
	HoldingPeriodDays  int64 `gorm:"not null;default:7;comment:收益保护期天数"`
	ProcessingFeeRate  int64 `gorm:"column:processing_fee_rate;not null;default:0;comment:通道手续费费率;万分比"`
	ProcessingFeeFixed int64 `gorm:"not null;default:0;comment:通道固定手续费;单位为分"`
	Ctime              int64
	Utime              int64
}
