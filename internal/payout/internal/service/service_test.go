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
	"testing"
	"time"

	"github.com/ecodeclub/wemall/internal/payout/internal/domain"
	"github.com/ecodeclub/wemall/internal/payout/internal/event"
	"github.com/ecodeclub/wemall/internal/payout/internal/repository"
	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPayout(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	stl := &fakeSettlement{available: 50000}
	svc := newTestService(repo, stl, &fakeProducer{})

	p, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethodAlipay, "seller@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, p.SN)
	assert.Equal(t, domain.PayoutStatusPending, p.Status)
	assert.Equal(t, int64(20000), p.Amount)
	assert.NotZero(t, p.ReservationID)
	assert.Equal(t, int64(20000), stl.reserved)
}

func TestRequestPayout_BelowMinimum(t *testing.T) {
	t.Parallel()
	stl := &fakeSettlement{available: 50000}
	svc := newTestService(newFakeRepository(), stl, &fakeProducer{})

	_, err := svc.RequestPayout(context.Background(), 3, 500, domain.PayoutMethodAlipay, "seller@example.com")
	assert.ErrorIs(t, err, ErrBelowMinimumPayout)
	// 未通过门槛校验时不应该预留金额
	assert.Zero(t, stl.reserveCalls)
}

func TestRequestPayout_InsufficientBalance(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	stl := &fakeSettlement{available: 10000}
	svc := newTestService(repo, stl, &fakeProducer{})

	_, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethodAlipay, "seller@example.com")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Zero(t, repo.createCalls)
}

func TestRequestPayout_InvalidMethod(t *testing.T) {
	t.Parallel()
	stl := &fakeSettlement{available: 50000}
	svc := newTestService(newFakeRepository(), stl, &fakeProducer{})

	_, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethod(99), "seller@example.com")
	assert.ErrorIs(t, err, ErrInvalidPayoutMethod)
	assert.Zero(t, stl.reserveCalls)
}

func TestRequestPayout_CreateFailureReleasesReservation(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	repo.createErr = errors.New("db down")
	stl := &fakeSettlement{available: 50000}
	svc := newTestService(repo, stl, &fakeProducer{})

	_, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethodAlipay, "seller@example.com")
	require.Error(t, err)
	assert.Equal(t, 1, stl.cancelCalls)
}

func TestApprove(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	stl := &fakeSettlement{available: 50000}
	producer := &fakeProducer{}
	svc := newTestService(repo, stl, producer)

	p, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethodBankTransfer, "6222000011112222")
	require.NoError(t, err)

	err = svc.Approve(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stl.confirmCalls)

	stored := repo.payouts[p.ID]
	assert.Equal(t, domain.PayoutStatusApproved, stored.Status)
	require.Len(t, producer.events, 1)
	assert.Equal(t, p.SN, producer.events[0].SN)
	assert.Equal(t, domain.PayoutStatusApproved.ToUint8(), producer.events[0].Status)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	stl := &fakeSettlement{available: 50000}
	svc := newTestService(repo, stl, &fakeProducer{})

	p, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethodAlipay, "seller@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), p.ID))

	err = svc.Approve(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	err = svc.Reject(context.Background(), p.ID, "重复审核")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	// 确认只发生一次
	assert.Equal(t, 1, stl.confirmCalls)
}

func TestReject(t *testing.T) {
	t.Parallel()
	repo := newFakeRepository()
	stl := &fakeSettlement{available: 50000}
	producer := &fakeProducer{}
	svc := newTestService(repo, stl, producer)

	p, err := svc.RequestPayout(context.Background(), 3, 20000, domain.PayoutMethodWechat, "wx-account")
	require.NoError(t, err)

	err = svc.Reject(context.Background(), p.ID, "账号信息有误")
	require.NoError(t, err)
	assert.Equal(t, 1, stl.cancelCalls)

	stored := repo.payouts[p.ID]
	assert.Equal(t, domain.PayoutStatusRejected, stored.Status)
	assert.Equal(t, "账号信息有误", stored.RejectReason)
}

func newTestService(repo repository.PayoutRepository, stl settlement.Service, p event.PayoutEventProducer) Service {
	return NewService(repo, stl, &fakeSettings{}, sequencenumber.NewGenerator(), p)
}

func newFakeRepository() *fakePayoutRepository {
	return &fakePayoutRepository{payouts: make(map[int64]domain.PayoutRequest)}
}

type fakePayoutRepository struct {
	payouts     map[int64]domain.PayoutRequest
	nextID      int64
	createCalls int
	createErr   error
}

func (f *fakePayoutRepository) Create(_ context.Context, p domain.PayoutRequest) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	p.ID = f.nextID
	f.payouts[p.ID] = p
	return p.ID, nil
}

func (f *fakePayoutRepository) FindByID(_ context.Context, id int64) (domain.PayoutRequest, error) {
	p, ok := f.payouts[id]
	if !ok {
		return domain.PayoutRequest{}, ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePayoutRepository) ListBySellerID(_ context.Context, sellerID int64, _, _ int) ([]domain.PayoutRequest, error) {
	var res []domain.PayoutRequest
	for _, p := range f.payouts {
		if p.SellerID == sellerID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f *fakePayoutRepository) TotalBySellerID(_ context.Context, sellerID int64) (int64, error) {
	ps, _ := f.ListBySellerID(context.Background(), sellerID, 0, 0)
	return int64(len(ps)), nil
}

func (f *fakePayoutRepository) ListByStatus(_ context.Context, status domain.PayoutStatus, _, _ int) ([]domain.PayoutRequest, error) {
	var res []domain.PayoutRequest
	for _, p := range f.payouts {
		if p.Status == status {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f *fakePayoutRepository) TotalByStatus(_ context.Context, status domain.PayoutStatus) (int64, error) {
	ps, _ := f.ListByStatus(context.Background(), status, 0, 0)
	return int64(len(ps)), nil
}

func (f *fakePayoutRepository) UpdateStatus(_ context.Context, id int64, status domain.PayoutStatus, rejectReason string) error {
	p, ok := f.payouts[id]
	if !ok {
		return ErrRecordNotFound
	}
	if p.Status != domain.PayoutStatusPending {
		return ErrInvalidStatusTransition
	}
	p.Status = status
	p.RejectReason = rejectReason
	f.payouts[id] = p
	return nil
}

type fakeSettlement struct {
	available    int64
	reserved     int64
	nextRID      int64
	reserveCalls int
	confirmCalls int
	cancelCalls  int
}

func (f *fakeSettlement) SplitOrder(_ context.Context, _ settlement.OrderInfo) ([]settlement.SubOrder, error) {
	return nil, nil
}

func (f *fakeSettlement) FindSubOrdersByParentOrderID(_ context.Context, _ int64) ([]settlement.SubOrder, error) {
	return nil, nil
}

func (f *fakeSettlement) ListSubOrdersBySellerID(_ context.Context, _ int64, _, _ int) ([]settlement.SubOrder, int64, error) {
	return nil, 0, nil
}

func (f *fakeSettlement) UpdateFulfillmentStatus(_ context.Context, _, _ int64, _ settlement.FulfillmentStatus) error {
	return nil
}

func (f *fakeSettlement) GetBalance(_ context.Context, sellerID int64) (settlement.Balance, error) {
	return settlement.Balance{SellerID: sellerID, Available: f.available - f.reserved}, nil
}

func (f *fakeSettlement) ListEarningsBySellerID(_ context.Context, _ int64, _, _ int) ([]settlement.Earning, int64, error) {
	return nil, 0, nil
}

func (f *fakeSettlement) PromoteDueEarnings(_ context.Context, _ time.Time, _ int) (int64, error) {
	return 0, nil
}

func (f *fakeSettlement) TryReserveEarnings(_ context.Context, _, amount int64) (int64, error) {
	f.reserveCalls++
	if f.available-f.reserved < amount {
		return 0, settlement.ErrInsufficientBalance
	}
	f.reserved += amount
	f.nextRID++
	return f.nextRID, nil
}

func (f *fakeSettlement) ConfirmReservation(_ context.Context, _, _ int64) error {
	f.confirmCalls++
	return nil
}

func (f *fakeSettlement) CancelReservation(_ context.Context, _, _ int64) error {
	f.cancelCalls++
	f.reserved = 0
	return nil
}

type fakeSettings struct{}

func (f *fakeSettings) GetCommissionSetting(_ context.Context) (settings.CommissionSetting, error) {
	return settings.CommissionSetting{DefaultRateBps: 1000}, nil
}

func (f *fakeSettings) SaveCommissionSetting(_ context.Context, _ settings.CommissionSetting) error {
	return nil
}

func (f *fakeSettings) CommissionRateFor(_ context.Context, _ int64) (int64, error) {
	return 1000, nil
}

func (f *fakeSettings) SaveSellerRate(_ context.Context, _ settings.SellerRate) error {
	return nil
}

func (f *fakeSettings) GetPayoutSetting(_ context.Context) (settings.PayoutSetting, error) {
	return settings.PayoutSetting{MinPayoutAmount: 1000, HoldingPeriodDays: 7}, nil
}

func (f *fakeSettings) SavePayoutSetting(_ context.Context, _ settings.PayoutSetting) error {
	return nil
}

type fakeProducer struct {
	events []event.PayoutEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.PayoutEvent) error {
	f.events = append(f.events, evt)
	return nil
}
