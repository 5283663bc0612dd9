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

type CommissionSetting struct {
	DefaultRateBps int64 `json:"defaultRateBps"`
	Utime          int64 `json:"utime,omitempty"`
}

// SaveSellerRateReq 设置卖家专属费率
type SaveSellerRateReq struct {
	SellerID int64 `json:"sellerID"`
	RateBps  int64 `json:"rateBps"`
}

type PayoutSetting struct {
	MinPayoutAmount      int64 `json:"minPayoutAmount"`
	HoldingPeriodDays    int64 `json:"holdingPeriodDays"`
	ProcessingFeeRateBps int64 `json:"processingFeeRateBps"`
	ProcessingFeeFixed   int64 `json:"processingFeeFixed"`
	Utime                int64 `json:"utime,omitempty"`
}
