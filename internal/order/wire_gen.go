// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package order

import (
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
	"sync"
	"time"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ, cache ecache.Cache, settlementSvc settlement.Service) (*Module, error) {
	orderDAO := InitTablesOnce(db)
	orderRepository := repository.NewRepository(orderDAO)
	serviceService := service.NewService(orderRepository)
	generator := sequencenumber.NewGenerator()
	v := web.NewHandler(serviceService, generator, cache)
	v2 := web.NewAdminHandler(serviceService)
	orderEventProducer := initOrderEventProducer(q)
	v3 := initPaymentConsumer(serviceService, settlementSvc, orderEventProducer, q)
	v4 := initCloseExpiredOrdersJob(serviceService)
	module := &Module{
		Hdl:      v,
		AdminHdl: v2,
		Svc:      serviceService,
		Consumer: v3,
		CloseJob: v4,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewRepository, service.NewService, sequencenumber.NewGenerator, initOrderEventProducer,
	initPaymentConsumer, web.NewHandler, web.NewAdminHandler, initCloseExpiredOrdersJob,
)

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
