// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package payout

import (
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
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ, settlementSvc settlement.Service, settingsSvc settings.Service) (*Module, error) {
	payoutDAO := InitTablesOnce(db)
	payoutRepository := repository.NewPayoutRepository(payoutDAO)
	generator := sequencenumber.NewGenerator()
	payoutEventProducer := initPayoutEventProducer(q)
	serviceService := service.NewService(payoutRepository, settlementSvc, settingsSvc, generator, payoutEventProducer)
	v := web.NewHandler(serviceService)
	v2 := web.NewAdminHandler(serviceService)
	module := &Module{
		Hdl:      v,
		AdminHdl: v2,
		Svc:      serviceService,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewPayoutRepository, sequencenumber.NewGenerator, initPayoutEventProducer, service.NewService, web.NewHandler, web.NewAdminHandler,
)

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
