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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/wemall/internal/settlement/internal/domain"
	"github.com/ecodeclub/wemall/internal/settlement/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// Handler 卖家侧的收益与子订单接口
type Handler struct {
	svc    service.Service
	logger *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/seller")
	g.POST("/earnings/list", ginx.BS[ListEarningsReq](h.ListEarnings))
	g.POST("/earnings/balance", ginx.S(h.GetBalance))
	g.POST("/suborders/list", ginx.BS[ListSubOrdersReq](h.ListSubOrders))
	g.POST("/suborders/fulfillment", ginx.BS[UpdateFulfillmentReq](h.UpdateFulfillment))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) ListEarnings(ctx *ginx.Context, req ListEarningsReq, sess session.Session) (ginx.Result, error) {
	sellerID := sess.Claims().Uid
	earnings, total, err := h.svc.ListEarningsBySellerID(ctx.Request.Context(), sellerID, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	balance, err := h.svc.GetBalance(ctx.Request.Context(), sellerID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListEarningsResp{
			Balance: h.toBalanceVO(balance),
			Total:   total,
			Earnings: slice.Map(earnings, func(idx int, src domain.Earning) Earning {
				return h.toEarningVO(src)
			}),
		},
	}, nil
}

func (h *Handler) GetBalance(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	balance, err := h.svc.GetBalance(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: h.toBalanceVO(balance),
	}, nil
}

func (h *Handler) ListSubOrders(ctx *ginx.Context, req ListSubOrdersReq, sess session.Session) (ginx.Result, error) {
	subOrders, total, err := h.svc.ListSubOrdersBySellerID(ctx.Request.Context(), sess.Claims().Uid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListSubOrdersResp{
			Total: total,
			SubOrders: slice.Map(subOrders, func(idx int, src domain.SubOrder) SubOrder {
				return h.toSubOrderVO(src)
			}),
		},
	}, nil
}

func (h *Handler) UpdateFulfillment(ctx *ginx.Context, req UpdateFulfillmentReq, sess session.Session) (ginx.Result, error) {
	status := domain.FulfillmentStatus(req.Status)
	if !status.IsValid() {
		return systemErrorResult, fmt.Errorf("非法的履约状态: %d", req.Status)
	}
	err := h.svc.UpdateFulfillmentStatus(ctx.Request.Context(), sess.Claims().Uid, req.SubOrderID, status)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) toBalanceVO(src domain.Balance) Balance {
	return Balance{
		Available: src.Available,
		Pending:   src.Pending,
		Reserved:  src.Reserved,
		Paid:      src.Paid,
		Total:     src.Total,
	}
}

func (h *Handler) toEarningVO(src domain.Earning) Earning {
	return Earning{
		OrderID:          src.OrderID,
		SubOrderID:       src.SubOrderID,
		GrossAmount:      src.GrossAmount,
		CommissionRate:   src.CommissionRate,
		CommissionAmount: src.CommissionAmount,
		ProcessingFee:    src.ProcessingFee,
		NetAmount:        src.NetAmount,
		Status:           src.Status.ToUint8(),
		AvailableAt:      src.AvailableAt,
		Ctime:            src.Ctime,
	}
}

func (h *Handler) toSubOrderVO(src domain.SubOrder) SubOrder {
	return SubOrder{
		ID:                src.ID,
		SN:                src.SN,
		ParentOrderSN:     src.ParentOrderSN,
		TotalAmount:       src.TotalAmount,
		FulfillmentStatus: src.FulfillmentStatus.ToUint8(),
		Items: slice.Map(src.Items, func(idx int, item domain.SubOrderItem) SubOrderItem {
			return SubOrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			}
		}),
		Ctime: src.Ctime,
		Utime: src.Utime,
	}
}
