package errs

var (
	SystemError           = ErrorCode{Code: 506001, Msg: "系统错误"}
	InsufficientBalance   = ErrorCode{Code: 506002, Msg: "可提现余额不足"}
	BelowMinimumPayout    = ErrorCode{Code: 506003, Msg: "提现金额低于最低提现门槛"}
	InvalidPayoutRequest  = ErrorCode{Code: 506004, Msg: "提现申请非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
