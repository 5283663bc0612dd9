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

package web

import (
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/wemall/internal/payout/internal/domain"
	"github.com/ecodeclub/wemall/internal/payout/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

// Handler 卖家侧的提现接口
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/seller/payout")
	g.POST("/request", ginx.BS[RequestPayoutReq](h.RequestPayout))
	g.POST("/list", ginx.BS[ListPayoutsReq](h.ListPayouts))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) RequestPayout(ctx *ginx.Context, req RequestPayoutReq, sess session.Session) (ginx.Result, error) {
	p, err := h.svc.RequestPayout(ctx.Request.Context(), sess.Claims().Uid, req.Amount, domain.PayoutMethod(req.Method), req.Account)
	switch {
	case errors.Is(err, service.ErrInsufficientBalance):
		return insufficientBalanceResult, err
	case errors.Is(err, service.ErrBelowMinimumPayout):
		return belowMinimumPayoutResult, err
	case errors.Is(err, service.ErrInvalidPayoutMethod):
		return invalidPayoutRequestResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: RequestPayoutResp{
			SN: p.SN,
		},
	}, nil
}

func (h *Handler) ListPayouts(ctx *ginx.Context, req ListPayoutsReq, sess session.Session) (ginx.Result, error) {
	ps, total, err := h.svc.ListPayoutsBySellerID(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListPayoutsResp{
			Total: total,
			Payouts: slice.Map(ps, func(idx int, src domain.PayoutRequest) Payout {
				return toPayoutVO(src)
			}),
		},
	}, nil
}

func toPayoutVO(p domain.PayoutRequest) Payout {
	return Payout{
		ID:           p.ID,
		SN:           p.SN,
		Amount:       p.Amount,
		Method:       p.Method.ToUint8(),
		Account:      p.Account,
		Status:       p.Status.ToUint8(),
		RejectReason: p.RejectReason,
		Ctime:        p.Ctime,
		Utime:        p.Utime,
	}
}
