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

// CommissionSetting 平台级佣金配置
type CommissionSetting struct {
	// DefaultRateBps 默认佣金费率, 万分比
	DefaultRateBps int64
	Utime          int64
}

// SellerRate 卖家级佣金费率, 覆盖默认费率, 作为卖家分层的扩展点
type SellerRate struct {
	SellerID int64
	RateBps  int64
	Utime    int64
}

// PayoutSetting 提现与结算配置
type PayoutSetting struct {
	// MinPayoutAmount 最小提现金额;单位为分
	MinPayoutAmount int64
	// HoldingPeriodDays 收益保护期天数, 覆盖退货/争议窗口
	HoldingPeriodDays int64
	// ProcessingFeeRateBps 支付通道手续费费率, 万分比; 平台承担时为0
	ProcessingFeeRateBps int64
	// ProcessingFeeFixed 支付通道固定手续费;单位为分
	ProcessingFeeFixed int64
	Utime              int64
}
