// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package ioc

import (
	"github.com/ecodeclub/wemall/internal/order"
	"github.com/ecodeclub/wemall/internal/payout"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitApp() (*App, error) {
	cmdable := InitRedis()
	provider := InitSession(cmdable)
	v := InitDB()
	mq := InitMQ()
	cache := InitCache(cmdable)
	module := settings.InitModule(v, cache)
	v2 := module.Svc
	settlementModule, err := settlement.InitModule(v, mq, v2)
	if err != nil {
		return nil, err
	}
	v3 := settlementModule.Svc
	orderModule, err := order.InitModule(v, mq, cache, v3)
	if err != nil {
		return nil, err
	}
	v4 := orderModule.Hdl
	v5 := settlementModule.Hdl
	payoutModule, err := payout.InitModule(v, mq, v3, v2)
	if err != nil {
		return nil, err
	}
	v6 := payoutModule.Hdl
	component := initGinxServer(provider, v4, v5, v6)
	v7 := orderModule.AdminHdl
	v8 := payoutModule.AdminHdl
	v9 := module.AdminHdl
	adminServer := InitAdminServer(v7, v8, v9)
	v10 := orderModule.CloseJob
	v11 := settlementModule.Job
	v12 := initCronJobs(v10, v11)
	v13 := orderModule.Consumer
	v14 := initMQConsumers(v13)
	app := &App{
		Web:       component,
		Admin:     adminServer,
		Crons:     v12,
		Consumers: v14,
	}
	return app, nil
}

// wire.go:

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)
