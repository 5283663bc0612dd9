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

type CreateOrderReq struct {
	// RequestID 客户端生成, 用于防止重复下单
	RequestID   string      `json:"requestID"`
	TotalAmount int64       `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
}

type CreateOrderResp struct {
	OrderSN string `json:"orderSN"`
}

type RetrieveOrderStatusReq struct {
	OrderSN string `json:"orderSN"`
}

type RetrieveOrderStatusResp struct {
	OrderStatus uint8 `json:"orderStatus"`
}

type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

type RetrieveOrderDetailReq struct {
	OrderSN string `json:"orderSN"`
}

type RetrieveOrderDetailResp struct {
	Order Order `json:"order"`
}

type CancelOrderReq struct {
	OrderSN string `json:"orderSN"`
}

type Order struct {
	SN          string      `json:"sn"`
	BuyerID     int64       `json:"buyerID,omitempty"`
	PaymentSN   string      `json:"paymentSN,omitempty"`
	TotalAmount int64       `json:"totalAmount"`
	Status      uint8       `json:"status"`
	Items       []OrderItem `json:"items,omitempty"`
	Ctime       int64       `json:"ctime"`
	Utime       int64       `json:"utime"`
}

type OrderItem struct {
	ProductID int64  `json:"productID"`
	SellerID  int64  `json:"sellerID"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}
