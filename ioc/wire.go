//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/wemall/internal/order"
	"github.com/ecodeclub/wemall/internal/payout"
	"github.com/ecodeclub/wemall/internal/settings"
	"github.com/ecodeclub/wemall/internal/settlement"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		settings.InitModule,
		wire.FieldsOf(new(*settings.Module), "AdminHdl", "Svc"),
		settlement.InitModule,
		wire.FieldsOf(new(*settlement.Module), "Hdl", "Svc", "Job"),
		payout.InitModule,
		wire.FieldsOf(new(*payout.Module), "Hdl", "AdminHdl"),
		order.InitModule,
		wire.FieldsOf(new(*order.Module), "Hdl", "AdminHdl", "Consumer", "CloseJob"),
		InitSession,
		initGinxServer,
		InitAdminServer,
		initCronJobs,
		initMQConsumers)
	return new(App), nil
}
