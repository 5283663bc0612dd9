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

package payout

import (
	"github.com/ecodeclub/wemall/internal/payout/internal/domain"
	"github.com/ecodeclub/wemall/internal/payout/internal/service"
	"github.com/ecodeclub/wemall/internal/payout/internal/web"
)

type (
	Handler       = web.Handler
	AdminHandler  = web.AdminHandler
	Service       = service.Service
	PayoutRequest = domain.PayoutRequest
	PayoutMethod  = domain.PayoutMethod
	PayoutStatus  = domain.PayoutStatus
)

const (
	StatusPending  = domain.PayoutStatusPending
	StatusApproved = domain.PayoutStatusApproved
	StatusRejected = domain.PayoutStatusRejected

	MethodBankTransfer = domain.PayoutMethodBankTransfer
	MethodAlipay       = domain.PayoutMethodAlipay
	MethodWechat       = domain.PayoutMethodWechat
)

var (
	ErrBelowMinimumPayout  = service.ErrBelowMinimumPayout
	ErrInsufficientBalance = service.ErrInsufficientBalance
)

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
}
