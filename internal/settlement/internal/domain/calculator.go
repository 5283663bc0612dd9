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

import "errors"

var (
	ErrInvalidGrossAmount    = errors.New("订单金额非法")
	ErrInvalidCommissionRate = errors.New("佣金费率非法")
	// ErrNegativeNetAmount 佣金费率配置错误, 扣除佣金和手续费后净额为负
	ErrNegativeNetAmount = errors.New("卖家净收益为负")
)

// RateBase 费率基数, 费率一律用万分比表示, 1000 即 10.00%
const RateBase = 10000

// FeeModel 支付通道手续费模型, 平台承担手续费时传零值
type FeeModel struct {
	RateBps     int64
	FixedAmount int64
}

// Amounts 单笔收益的金额拆解, 全部为整数最小货币单位(分)
type Amounts struct {
	GrossAmount      int64
	CommissionAmount int64
	ProcessingFee    int64
	NetAmount        int64
}

// CalculateAmounts 按费率拆解卖家收益。
// 佣金和手续费均按四舍五入取整, 避免长期少收平台佣金。
// 净额为负说明费率配置有问题, 返回 ErrNegativeNetAmount, 调用方必须放弃本次拆单。
func CalculateAmounts(grossAmount int64, commissionRateBps int64, fee FeeModel) (Amounts, error) {
	if grossAmount < 0 {
		return Amounts{}, ErrInvalidGrossAmount
	}
	if commissionRateBps < 0 || commissionRateBps > RateBase {
		return Amounts{}, ErrInvalidCommissionRate
	}
	if fee.RateBps < 0 || fee.RateBps > RateBase || fee.FixedAmount < 0 {
		return Amounts{}, ErrInvalidCommissionRate
	}
	commission := roundHalfUp(grossAmount * commissionRateBps)
	processingFee := roundHalfUp(grossAmount*fee.RateBps) + fee.FixedAmount
	net := grossAmount - commission - processingFee
	if net < 0 {
		return Amounts{}, ErrNegativeNetAmount
	}
	return Amounts{
		GrossAmount:      grossAmount,
		CommissionAmount: commission,
		ProcessingFee:    processingFee,
		NetAmount:        net,
	}, nil
}

func roundHalfUp(scaled int64) int64 {
	return (scaled + RateBase/2) / RateBase
}
