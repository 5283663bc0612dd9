// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package startup

import (
	"github.com/ecodeclub/wemall/internal/order"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/ecodeclub/wemall/internal/test/ioc"
)

// Injectors from wire.go:

func InitModule() (*Module, error) {
	v := testioc.InitDB()
	cache := testioc.InitCache()
	module := settings.InitModule(v, cache)
	v2 := module.Svc
	mq := testioc.InitMQ()
	settlementModule, err := settlement.InitModule(v, mq, v2)
	if err != nil {
		return nil, err
	}
	v3 := settlementModule.Svc
	orderModule, err := order.InitModule(v, mq, cache, v3)
	if err != nil {
		return nil, err
	}
	startupModule := &Module{
		SettingsSvc:   v2,
		SettlementSvc: v3,
		Order:         orderModule,
	}
	return startupModule, nil
}

// wire.go:

type Module struct {
	SettingsSvc   settings.Service
	SettlementSvc settlement.Service
	Order         *order.Module
}
