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
	"github.com/ecodeclub/wemall/internal/payout/internal/domain"
	"github.com/ecodeclub/wemall/internal/payout/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler 运营侧的提现审核
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/payout")
	g.POST("/list", ginx.B[ListPayoutsReq](h.ListPendingPayouts))
	g.POST("/approve", ginx.B[ApprovePayoutReq](h.Approve))
	g.POST("/reject", ginx.B[RejectPayoutReq](h.Reject))
}

func (h *AdminHandler) ListPendingPayouts(ctx *ginx.Context, req ListPayoutsReq) (ginx.Result, error) {
	ps, total, err := h.svc.ListPendingPayouts(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListPayoutsResp{
			Total: total,
			Payouts: slice.Map(ps, func(idx int, src domain.PayoutRequest) Payout {
				vo := toPayoutVO(src)
				vo.SellerID = src.SellerID
				return vo
			}),
		},
	}, nil
}

func (h *AdminHandler) Approve(ctx *ginx.Context, req ApprovePayoutReq) (ginx.Result, error) {
	err := h.svc.Approve(ctx.Request.Context(), req.ID)
	if errors.Is(err, service.ErrInvalidStatusTransition) || errors.Is(err, service.ErrRecordNotFound) {
		return invalidPayoutRequestResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) Reject(ctx *ginx.Context, req RejectPayoutReq) (ginx.Result, error) {
	err := h.svc.Reject(ctx.Request.Context(), req.ID, req.Reason)
	if errors.Is(err, service.ErrInvalidStatusTransition) || errors.Is(err, service.ErrRecordNotFound) {
		return invalidPayoutRequestResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
