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

package order

import (
	"sync"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/wemall/internal/order/internal/event"
	"github.com/ecodeclub/wemall/internal/order/internal/job"
	"github.com/ecodeclub/wemall/internal/order/internal/repository"
	"github.com/ecodeclub/wemall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/wemall/internal/order/internal/service"
	"github.com/ecodeclub/wemall/internal/order/internal/web"
	"github.com/ecodeclub/wemall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	repository.NewRepository,
	service.NewService,
	sequencenumber.NewGenerator,
	initOrderEventProducer,
	initPaymentConsumer,
	web.NewHandler,
	web.NewAdminHandler,
	initCloseExpiredOrdersJob,
)

func InitModule(db *egorm.Component, q mq.MQ, cache ecache.Cache, settlementSvc settlement.Service) (*Module, error) {
	wire.Build(wire.Struct(new(Module), "*"), ModuleSet)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}

func initOrderEventProducer(q mq.MQ) event.OrderEventProducer {
	p, err := event.NewOrderEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func initPaymentConsumer(svc service.Service, settlementSvc settlement.Service, producer event.OrderEventProducer, q mq.MQ) *event.PaymentConsumer {
	c, err := event.NewPaymentConsumer(svc, settlementSvc, producer, q)
	if err != nil {
		panic(err)
	}
	return c
}

func initCloseExpiredOrdersJob(svc service.Service) *job.CloseExpiredOrdersJob {
	const (
		limit   = 100
		minute  = 30
		timeout = 10 * time.Minute
	)
	return job.NewCloseExpiredOrdersJob(svc, limit, minute, timeout)
}
