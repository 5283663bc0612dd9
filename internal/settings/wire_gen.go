// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package settings

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/wemall/internal/settings/internal/repository"
	"github.com/ecodeclub/wemall/internal/settings/internal/repository/cache"
	"github.com/ecodeclub/wemall/internal/settings/internal/repository/dao"
	"github.com/ecodeclub/wemall/internal/settings/internal/service"
	"github.com/ecodeclub/wemall/internal/settings/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, ec ecache.Cache) *Module {
	settingDAO := InitTablesOnce(db)
	settingCache := cache.NewSettingECache(ec)
	settingRepository := repository.NewSettingRepository(settingDAO, settingCache)
	serviceService := service.NewService(settingRepository)
	v := web.NewAdminHandler(serviceService)
	module := &Module{
		AdminHdl: v,
		Svc:      serviceService,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, cache.NewSettingECache, repository.NewSettingRepository, service.NewService, web.NewAdminHandler, wire.Struct(new(Module), "*"),
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.SettingDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewSettingGORMDAO(db)
}
