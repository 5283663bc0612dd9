package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/wemall/internal/settlement/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)
