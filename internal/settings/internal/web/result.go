package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/wemall/internal/settings/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	invalidRateResult = ginx.Result{
		Code: errs.InvalidRate.Code,
		Msg:  errs.InvalidRate.Msg,
	}
)
