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

package order

import (
	"github.com/ecodeclub/wemall/internal/order/internal/domain"
	"github.com/ecodeclub/wemall/internal/order/internal/event"
	"github.com/ecodeclub/wemall/internal/order/internal/job"
	"github.com/ecodeclub/wemall/internal/order/internal/service"
	"github.com/ecodeclub/wemall/internal/order/internal/web"
)

type (
	Handler               = web.Handler
	AdminHandler          = web.AdminHandler
	Service               = service.Service
	Order                 = domain.Order
	OrderItem             = domain.OrderItem
	PaymentConsumer       = event.PaymentConsumer
	CloseExpiredOrdersJob = job.CloseExpiredOrdersJob
)

const (
	StatusUnpaid    = domain.OrderStatusUnpaid
	StatusPaid      = domain.OrderStatusPaid
	StatusCompleted = domain.OrderStatusCompleted
	StatusCanceled  = domain.OrderStatusCanceled
	StatusExpired   = domain.OrderStatusExpired
)

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
	Consumer *PaymentConsumer
	CloseJob *CloseExpiredOrdersJob
}
