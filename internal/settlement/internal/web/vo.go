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

// ListEarningsReq 分页查询卖家收益
type ListEarningsReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListEarningsResp struct {
	Balance  Balance   `json:"balance"`
	Total    int64     `json:"total,omitempty"`
	Earnings []Earning `json:"earnings,omitempty"`
}

type Balance struct {
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
	Reserved  int64 `json:"reserved"`
	Paid      int64 `json:"paid"`
	Total     int64 `json:"total"`
}

type Earning struct {
	OrderID          int64 `json:"orderID"`
	SubOrderID       int64 `json:"subOrderID"`
	GrossAmount      int64 `json:"grossAmount"`
	CommissionRate   int64 `json:"commissionRate"`
	CommissionAmount int64 `json:"commissionAmount"`
	ProcessingFee    int64 `json:"processingFee"`
	NetAmount        int64 `json:"netAmount"`
	Status           uint8 `json:"status"`
	AvailableAt      int64 `json:"availableAt"`
	Ctime            int64 `json:"ctime"`
}

// ListSubOrdersReq 分页查询卖家子订单
type ListSubOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListSubOrdersResp struct {
	Total     int64      `json:"total,omitempty"`
	SubOrders []SubOrder `json:"subOrders,omitempty"`
}

type SubOrder struct {
	ID                int64          `json:"id"`
	SN                string         `json:"sn"`
	ParentOrderSN     string         `json:"parentOrderSN"`
	TotalAmount       int64          `json:"totalAmount"`
	FulfillmentStatus uint8          `json:"fulfillmentStatus"`
	Items             []SubOrderItem `json:"items,omitempty"`
	Ctime             int64          `json:"ctime"`
	Utime             int64          `json:"utime"`
}

type SubOrderItem struct {
	ProductID int64  `json:"productID"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// UpdateFulfillmentReq 卖家更新子订单履约状态
type UpdateFulfillmentReq struct {
	SubOrderID int64 `json:"subOrderID"`
	Status     uint8 `json:"status"`
}
