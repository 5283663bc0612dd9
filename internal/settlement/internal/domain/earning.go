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

type EarningStatus uint8

func (s EarningStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// EarningStatusPending 处于回款保护期内,不可提现
	EarningStatusPending EarningStatus = 1
	// EarningStatusAvailable 保护期已过,可提现
	EarningStatusAvailable EarningStatus = 2
	// EarningStatusPaid 已随提现单支付给卖家
	EarningStatusPaid EarningStatus = 3
)

// Earning 一条卖家收益记录, 与子订单一一对应
type Earning struct {
	ID               int64
	SellerID         int64
	OrderID          int64
	SubOrderID       int64
	GrossAmount      int64
	CommissionRate   int64 // 万分比, 1000 表示 10.00%
	CommissionAmount int64
	ProcessingFee    int64
	NetAmount        int64
	// ReservedAmount 被进行中的提现单预留的金额
	ReservedAmount int64
	// PaidAmount 已随完成的提现单支付的金额
	PaidAmount  int64
	Status      EarningStatus
	AvailableAt int64
	Ctime       int64
	Utime       int64
}

// Balance 卖家余额汇总
type Balance struct {
	SellerID  int64
	Available int64
	Pending   int64
	// Reserved 被进行中的提现单占用, 审核通过后转为 Paid, 拒绝后退回 Available
	Reserved int64
	Paid     int64
	Total    int64
}
