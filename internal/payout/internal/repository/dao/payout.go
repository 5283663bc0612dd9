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
	// ErrInvalidStatusTransition 只有待审核的申请才能被审核
	ErrInvalidStatusTransition = errors.New("提现申请状态非法")
)

type PayoutDAO interface {
	Create(ctx context.Context, p PayoutRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (PayoutRequest, error)
	ListBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]PayoutRequest, error)
	CountBySellerID(ctx context.Context, sellerID int64) (int64, error)
	ListByStatus(ctx context.Context, status uint8, offset, limit int) ([]PayoutRequest, error)
	CountByStatus(ctx context.Context, status uint8) (int64, error)
	// UpdateStatus 待审核 -> 已打款/已拒绝, 其余转移无效
	UpdateStatus(ctx context.Context, id int64, status uint8, rejectReason string) error
}

type payoutDAO struct {
	db *egorm.Component
}

func NewPayoutGORMDAO(db *egorm.Component) PayoutDAO {
	return &payoutDAO{db: db}
}

func (g *payoutDAO) Create(ctx context.Context, p PayoutRequest) (int64, error) {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	err := g.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

func (g *payoutDAO) FindByID(ctx context.Context, id int64) (PayoutRequest, error) {
	var p PayoutRequest
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return p, err
}

func (g *payoutDAO) ListBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]PayoutRequest, error) {
	var res []PayoutRequest
	err := g.db.WithContext(ctx).Where("seller_id = ?", sellerID).
		Order("id desc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *payoutDAO) CountBySellerID(ctx context.Context, sellerID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&PayoutRequest{}).Where("seller_id = ?", sellerID).Count(&count).Error
	return count, err
}

func (g *payoutDAO) ListByStatus(ctx context.Context, status uint8, offset, limit int) ([]PayoutRequest, error) {
	var res []PayoutRequest
	err := g.db.WithContext(ctx).Where("status = ?", status).
		Order("id asc").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *payoutDAO) CountByStatus(ctx context.Context, status uint8) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&PayoutRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (g *payoutDAO) UpdateStatus(ctx context.Context, id int64, status uint8, rejectReason string) error {
	res := g.db.WithContext(ctx).Model(&PayoutRequest{}).
		Where("id = ? AND status = ?", id, PayoutStatusPending).
		Updates(map[string]any{
			"status":        status,
			"reject_reason": rejectReason,
			"utime":         time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrInvalidStatusTransition, id)
	}
	return nil
}

const (
	PayoutStatusPending  = 1
	PayoutStatusApproved = 2
	PayoutStatusRejected = 3
)

type PayoutRequest struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:提现申请自增ID"`
	SN            string `gorm:"column:sn;type:varchar(255);not null;uniqueIndex:uniq_payout_sn;comment:提现申请序列号"`
	SellerId      int64  `gorm:"not null;index:idx_seller_id;comment:卖家ID"`
	Amount        int64  `gorm:"not null;comment:提现金额;单位为分"`
	Method        uint8  `gorm:"type:tinyint unsigned;not null;comment:收款方式 1=银行转账 2=支付宝 3=微信"`
	Account       string `gorm:"type:varchar(255);not null;comment:收款账号快照"`
	ReservationId int64  `gorm:"not null;uniqueIndex:uniq_reservation_id;comment:收益预留记录ID"`
	Status        uint8  `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status;comment:申请状态 1=待审核 2=已打款 3=已拒绝"`
	RejectReason  string `gorm:"type:varchar(512);comment:拒绝原因"`
	Ctime         int64
	Utime         int64
}
