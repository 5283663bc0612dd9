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

type FulfillmentStatus uint8

func (s FulfillmentStatus) ToUint8() uint8 {
	return uint8(s)
}

func (s FulfillmentStatus) IsValid() bool {
	return s >= FulfillmentStatusPending && s <= FulfillmentStatusCompleted
}

const (
	FulfillmentStatusPending   FulfillmentStatus = 1
	FulfillmentStatusShipped   FulfillmentStatus = 2
	FulfillmentStatusDelivered FulfillmentStatus = 3
	FulfillmentStatusCompleted FulfillmentStatus = 4
)

// SubOrder 父订单按卖家切分后的子订单
type SubOrder struct {
	ID                int64
	SN                string
	ParentOrderID     int64
	ParentOrderSN     string
	SellerID          int64
	TotalAmount       int64
	FulfillmentStatus FulfillmentStatus
	Items             []SubOrderItem
	Ctime             int64
	Utime             int64
}

type SubOrderItem struct {
	ProductID int64
	SellerID  int64
	Name      string
	Price     int64
	Quantity  int64
}

// OrderInfo 拆单入参, 由 order 模块在支付成功后传入。
// 不直接依赖 order 模块的领域类型, 避免模块间循环引用。
type OrderInfo struct {
	OrderID     int64
	OrderSN     string
	BuyerID     int64
	TotalAmount int64
	Items       []OrderInfoItem
}

type OrderInfoItem struct {
	ProductID int64
	SellerID  int64
	Name      string
	Price     int64
	Quantity  int64
}
