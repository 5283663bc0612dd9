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

type PayoutStatus uint8

func (s PayoutStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// PayoutStatusPending 已申请, 金额已预留, 等待审核
	PayoutStatusPending PayoutStatus = 1
	// PayoutStatusApproved 审核通过并打款, 预留金额转为已支付
	PayoutStatusApproved PayoutStatus = 2
	// PayoutStatusRejected 审核拒绝, 预留金额退回可提现余额
	PayoutStatusRejected PayoutStatus = 3
)

type PayoutMethod uint8

func (m PayoutMethod) ToUint8() uint8 {
	return uint8(m)
}

func (m PayoutMethod) IsValid() bool {
	return m == PayoutMethodBankTransfer || m == PayoutMethodAlipay || m == PayoutMethodWechat
}

const (
	PayoutMethodBankTransfer PayoutMethod = 1
	PayoutMethodAlipay       PayoutMethod = 2
	PayoutMethodWechat       PayoutMethod = 3
)

// PayoutRequest 卖家提现申请
type PayoutRequest struct {
	ID       int64
	SN       string
	SellerID int64
	Amount   int64
	Method   PayoutMethod
	// Account 收款账号快照, 审核时人工核对
	Account string
	// ReservationID 结算模块的收益预留记录ID
	ReservationID int64
	Status        PayoutStatus
	RejectReason  string
	Ctime         int64
	Utime         int64
}
