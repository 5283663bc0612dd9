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

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/wemall/internal/settings/internal/domain"
	"github.com/ecodeclub/wemall/internal/settings/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/settings")
	g.POST("/commission/detail", ginx.W(h.CommissionDetail))
	g.POST("/commission/save", ginx.B[CommissionSetting](h.SaveCommission))
	g.POST("/commission/seller/save", ginx.B[SaveSellerRateReq](h.SaveSellerRate))
	g.POST("/payout/detail", ginx.W(h.PayoutDetail))
	g.POST("/payout/save", ginx.B[PayoutSetting](h.SavePayout))
}

func (h *AdminHandler) CommissionDetail(ctx *ginx.Context) (ginx.Result, error) {
	s, err := h.svc.GetCommissionSetting(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: CommissionSetting{DefaultRateBps: s.DefaultRateBps, Utime: s.Utime},
	}, nil
}

func (h *AdminHandler) SaveCommission(ctx *ginx.Context, req CommissionSetting) (ginx.Result, error) {
	err := h.svc.SaveCommissionSetting(ctx.Request.Context(), domain.CommissionSetting{
		DefaultRateBps: req.DefaultRateBps,
	})
	if errors.Is(err, service.ErrInvalidRate) {
		return invalidRateResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) SaveSellerRate(ctx *ginx.Context, req SaveSellerRateReq) (ginx.Result, error) {
	err := h.svc.SaveSellerRate(ctx.Request.Context(), domain.SellerRate{
		SellerID: req.SellerID,
		RateBps:  req.RateBps,
	})
	if errors.Is(err, service.ErrInvalidRate) {
		return invalidRateResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) PayoutDetail(ctx *ginx.Context) (ginx.Result, error) {
	s, err := h.svc.GetPayoutSetting(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: PayoutSetting{
			MinPayoutAmount:      s.MinPayoutAmount,
			HoldingPeriodDays:    s.HoldingPeriodDays,
			ProcessingFeeRateBps: s.ProcessingFeeRateBps,
			ProcessingFeeFixed:   s.ProcessingFeeFixed,
			Utime:                s.Utime,
		},
	}, nil
}

func (h *AdminHandler) SavePayout(ctx *ginx.Context, req PayoutSetting) (ginx.Result, error) {
	err := h.svc.SavePayoutSetting(ctx.Request.Context(), domain.PayoutSetting{
		MinPayoutAmount:      req.MinPayoutAmount,
		HoldingPeriodDays:    req.HoldingPeriodDays,
		ProcessingFeeRateBps: req.ProcessingFeeRateBps,
		ProcessingFeeFixed:   req.ProcessingFeeFixed,
	})
	if errors.Is(err, service.ErrInvalidRate) {
		return invalidRateResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
