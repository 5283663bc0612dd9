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

package payout

import (
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/wemall/internal/payout/internal/event"
	"github.com/ecodeclub/wemall/internal/payout/internal/repository"
	"github.com/ecodeclub/wemall/internal/payout/internal/repository/dao"
	"github.com/ecodeclub/wemall/internal/payout/internal/service"
	"github.com/ecodeclub/wemall/internal/payout/internal/web"
	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	repository.NewPayoutRepository,
	sequencenumber.NewGenerator,
	initPayoutEventProducer,
	service.NewService,
	web.NewHandler,
	web.NewAdminHandler,
)

func InitModule(db *egorm.Component, q mq.MQ, settlementSvc settlement.Service, settingsSvc settings.Service) (*Module, error) {
	wire.Build(wire.Struct(new(Module), "*"), ModuleSet)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PayoutDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPayoutGORMDAO(db)
}

func initPayoutEventProducer(q mq.MQ) event.PayoutEventProducer {
	p, err := event.NewPayoutEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}
