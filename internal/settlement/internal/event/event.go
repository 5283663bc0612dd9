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

package event

const EarningEventName = "earning_events"

// EarningEvent 卖家产生新收益, 由通知协作方消费后触达卖家
type EarningEvent struct {
	OrderSN   string `json:"orderSN"`
	SellerID  int64  `json:"sellerID"`
	NetAmount int64  `json:"netAmount"`
}
