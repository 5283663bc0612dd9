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

//go:build wireinject

package settlement

import (
	"sync"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement/internal/event"
	"github.com/ecodeclub/wemall/internal/settlement/internal/job"
	"github.com/ecodeclub/wemall/internal/settlement/internal/repository"
	"github.com/ecodeclub/wemall/internal/settlement/internal/repository/dao"
	"github.com/ecodeclub/wemall/internal/settlement/internal/service"
	"github.com/ecodeclub/wemall/internal/settlement/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	repository.NewSettlementRepository,
	sequencenumber.NewGenerator,
	initEarningEventProducer,
	service.NewService,
	web.NewHandler,
	initSettleDueEarningsJob,
)

func InitModule(db *egorm.Component, q mq.MQ, settingsSvc settings.Service) (*Module, error) {
	wire.Build(wire.Struct(new(Module), "*"), ModuleSet)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.SettlementDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewSettlementGORMDAO(db)
}

func initEarningEventProducer(q mq.MQ) event.EarningEventProducer {
	p, err := event.NewEarningEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func initSettleDueEarningsJob(svc service.Service) *job.SettleDueEarningsJob {
	return job.NewSettleDueEarningsJob(svc, 100, 10*time.Minute)
}
