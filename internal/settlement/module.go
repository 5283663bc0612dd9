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

package settlement

import (
	"github.com/ecodeclub/wemall/internal/settlement/internal/domain"
	"github.com/ecodeclub/wemall/internal/settlement/internal/job"
	"github.com/ecodeclub/wemall/internal/settlement/internal/service"
	"github.com/ecodeclub/wemall/internal/settlement/internal/web"
)

type (
	Handler              = web.Handler
	Service              = service.Service
	SettleDueEarningsJob = job.SettleDueEarningsJob

	SubOrder          = domain.SubOrder
	SubOrderItem      = domain.SubOrderItem
	Earning           = domain.Earning
	Balance           = domain.Balance
	OrderInfo         = domain.OrderInfo
	OrderInfoItem     = domain.OrderInfoItem
	FulfillmentStatus = domain.FulfillmentStatus
	EarningStatus     = domain.EarningStatus
)

const (
	FulfillmentStatusPending   = domain.FulfillmentStatusPending
	FulfillmentStatusShipped   = domain.FulfillmentStatusShipped
	FulfillmentStatusDelivered = domain.FulfillmentStatusDelivered
	FulfillmentStatusCompleted = domain.FulfillmentStatusCompleted

	EarningStatusPending   = domain.EarningStatusPending
	EarningStatusAvailable = domain.EarningStatusAvailable
	EarningStatusPaid      = domain.EarningStatusPaid
)

var (
	ErrMissingSellerID     = service.ErrMissingSellerID
	ErrOrderAlreadySplit   = service.ErrOrderAlreadySplit
	ErrInsufficientBalance = service.ErrInsufficientBalance
	ErrReservationNotFound = service.ErrReservationNotFound
)

type Module struct {
	Hdl *Handler
	Svc Service
	Job *SettleDueEarningsJob
}
