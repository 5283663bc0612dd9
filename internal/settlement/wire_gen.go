// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package settlement

import (
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
	"sync"
	"time"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ, settingsSvc settings.Service) (*Module, error) {
	settlementDAO := InitTablesOnce(db)
	settlementRepository := repository.NewSettlementRepository(settlementDAO)
	generator := sequencenumber.NewGenerator()
	earningEventProducer := initEarningEventProducer(q)
	serviceService := service.NewService(settlementRepository, settingsSvc, generator, earningEventProducer)
	v := web.NewHandler(serviceService)
	v2 := initSettleDueEarningsJob(serviceService)
	module := &Module{
		Hdl: v,
		Svc: serviceService,
		Job: v2,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewSettlementRepository, sequencenumber.NewGenerator, initEarningEventProducer, service.NewService, web.NewHandler, initSettleDueEarningsJob,
)

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
