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

type RequestPayoutReq struct {
	Amount  int64  `json:"amount"`
	Method  uint8  `json:"method"`
	Account string `json:"account"`
}

type RequestPayoutResp struct {
	SN string `json:"sn"`
}

type ListPayoutsReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListPayoutsResp struct {
	Total   int64    `json:"total,omitempty"`
	Payouts []Payout `json:"payouts,omitempty"`
}

type Payout struct {
	ID           int64  `json:"id"`
	SN           string `json:"sn"`
	SellerID     int64  `json:"sellerID,omitempty"`
	Amount       int64  `json:"amount"`
	Method       uint8  `json:"method"`
	Account      string `json:"account"`
	Status       uint8  `json:"status"`
	RejectReason string `json:"rejectReason,omitempty"`
	Ctime        int64  `json:"ctime"`
	Utime        int64  `json:"utime"`
}

type ApprovePayoutReq struct {
	ID int64 `json:"id"`
}

type RejectPayoutReq struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}
