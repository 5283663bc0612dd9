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

package domain

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// OrderStatusUnpaid 已创建待支付
	OrderStatusUnpaid OrderStatus = 1
	// OrderStatusPaid 已支付, 等待拆分结算
	OrderStatusPaid OrderStatus = 2
	// OrderStatusCompleted 所有子订单履约完成
	OrderStatusCompleted OrderStatus = 3
	// OrderStatusCanceled 买家主动取消
	OrderStatusCanceled OrderStatus = 4
	// OrderStatusExpired 超时未支付被关闭
	OrderStatusExpired OrderStatus = 5
)

// Order 买家视角的父订单, 可能包含多个卖家的商品
type Order struct {
	ID          int64
	SN          string
	BuyerID     int64
	PaymentSN   string
	TotalAmount int64
	Status      OrderStatus
	ClosedAt    int64
	PaidAt      int64
	Items       []OrderItem
	Ctime       int64
	Utime       int64
}

type OrderItem struct {
	OrderID   int64
	ProductID int64
	SellerID  int64
	Name      string
	Price     int64
	Quantity  int64
}
