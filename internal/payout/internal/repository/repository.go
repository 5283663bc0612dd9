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
	"github.com/ecodeclub/wemall/internal/payout/internal/domain"
	"github.com/ecodeclub/wemall/internal/payout/internal/repository/dao"
)

var (
	ErrRecordNotFound          = dao.ErrRecordNotFound
	ErrInvalidStatusTransition = dao.ErrInvalidStatusTransition
)

type PayoutRepository interface {
	Create(ctx context.Context, p domain.PayoutRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.PayoutRequest, error)
	ListBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.PayoutRequest, error)
	TotalBySellerID(ctx context.Context, sellerID int64) (int64, error)
	ListByStatus(ctx context.Context, status domain.PayoutStatus, offset, limit int) ([]domain.PayoutRequest, error)
	TotalByStatus(ctx context.Context, status domain.PayoutStatus) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PayoutStatus, rejectReason string) error
}

func NewPayoutRepository(d dao.PayoutDAO) PayoutRepository {
	return &payoutRepository{dao: d}
}

type payoutRepository struct {
	dao dao.PayoutDAO
}

func (r *payoutRepository) Create(ctx context.Context, p domain.PayoutRequest) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(p))
}

func (r *payoutRepository) FindByID(ctx context.Context, id int64) (domain.PayoutRequest, error) {
	p, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.PayoutRequest{}, err
	}
	return r.toDomain(p), nil
}

func (r *payoutRepository) ListBySellerID(ctx context.Context, sellerID int64, offset, limit int) ([]domain.PayoutRequest, error) {
	ps, err := r.dao.ListBySellerID(ctx, sellerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.PayoutRequest) domain.PayoutRequest {
		return r.toDomain(src)
	}), nil
}

func (r *payoutRepository) TotalBySellerID(ctx context.Context, sellerID int64) (int64, error) {
	return r.dao.CountBySellerID(ctx, sellerID)
}

func (r *payoutRepository) ListByStatus(ctx context.Context, status domain.PayoutStatus, offset, limit int) ([]domain.PayoutRequest, error) {
	ps, err := r.dao.ListByStatus(ctx, status.ToUint8(), offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.PayoutRequest) domain.PayoutRequest {
		return r.toDomain(src)
	}), nil
}

func (r *payoutRepository) TotalByStatus(ctx context.Context, status domain.PayoutStatus) (int64, error) {
	return r.dao.CountByStatus(ctx, status.ToUint8())
}

func (r *payoutRepository) UpdateStatus(ctx context.Context, id int64, status domain.PayoutStatus, rejectReason string) error {
	return r.dao.UpdateStatus(ctx, id, status.ToUint8(), rejectReason)
}

func (r *payoutRepository) toEntity(p domain.PayoutRequest) dao.PayoutRequest {
	return dao.PayoutRequest{
		Id:            p.ID,
		SN:            p.SN,
		SellerId:      p.SellerID,
		Amount:        p.Amount,
		Method:        p.Method.ToUint8(),
		Account:       p.Account,
		ReservationId: p.ReservationID,
		Status:        p.Status.ToUint8(),
		RejectReason:  p.RejectReason,
	}
}

func (r *payoutRepository) toDomain(p dao.PayoutRequest) domain.PayoutRequest {
	return domain.PayoutRequest{
		ID:            p.Id,
		SN:            p.SN,
		SellerID:      p.SellerId,
		Amount:        p.Amount,
		Method:        domain.PayoutMethod(p.Method),
		Account:       p.Account,
		ReservationID: p.ReservationId,
		Status:        domain.PayoutStatus(p.Status),
		RejectReason:  p.RejectReason,
		Ctime:         p.Ctime,
		Utime:         p.Utime,
	}
}
