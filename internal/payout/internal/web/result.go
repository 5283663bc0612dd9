package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/wemall/internal/payout/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	insufficientBalanceResult = ginx.Result{
		Code: errs.InsufficientBalance.Code,
		Msg:  errs.InsufficientBalance.Msg,
	}
	belowMinimumPayoutResult = ginx.Result{
		Code: errs.BelowMinimumPayout.Code,
		Msg:  errs.BelowMinimumPayout.Msg,
	}
	invalidPayoutRequestResult = ginx.Result{
		Code: errs.InvalidPayoutRequest.Code,
		Msg:  errs.InvalidPayoutRequest.Msg,
	}
)
