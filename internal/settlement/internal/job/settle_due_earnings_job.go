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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/wemall/internal/settlement/internal/service"
	"github.com/gotomicro/ego/core/elog"
)

// SettleDueEarningsJob 每日扫描, 把保护期已过的收益置为可提现。
// 每条收益最多迁移一次(按当前状态过滤), 重复执行是安全的
type SettleDueEarningsJob struct {
	svc     service.Service
	limit   int
	timeout time.Duration
	logger  *elog.Component
}

func NewSettleDueEarningsJob(svc service.Service, limit int, timeout time.Duration) *SettleDueEarningsJob {
	return &SettleDueEarningsJob{
		svc:     svc,
		limit:   limit,
		timeout: timeout,
		logger:  elog.DefaultLogger,
	}
}

func (j *SettleDueEarningsJob) Name() string {
	return "SettleDueEarningsJob"
}

func (j *SettleDueEarningsJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	now := time.Now()
	var total int64
	for {
		affected, err := j.svc.PromoteDueEarnings(ctx, now, j.limit)
		if err != nil {
			return fmt.Errorf("结算到期收益失败: %w", err)
		}
		total += affected
		if affected < int64(j.limit) {
			break
		}
	}
	j.logger.Info("结算到期收益完成", elog.Int64("affected", total))
	return nil
}
