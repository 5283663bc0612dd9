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

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/wemall/internal/pkg/mqx"
)

const PayoutEventName = "payout_events"

// PayoutEvent 提现申请审核结果, 供通知和对账系统消费
type PayoutEvent struct {
	SN       string `json:"sn"`
	SellerID int64  `json:"sellerID"`
	Amount   int64  `json:"amount"`
	Status   uint8  `json:"status"`
}

//go:generate mockgen -source=./producer.go -package=evtmocks -destination=./mocks/producer.mock.go -typed PayoutEventProducer
type PayoutEventProducer interface {
	Produce(ctx context.Context, evt PayoutEvent) error
}

func NewPayoutEventProducer(q mq.MQ) (PayoutEventProducer, error) {
	return mqx.NewGeneralProducer[PayoutEvent](q, PayoutEventName)
}
