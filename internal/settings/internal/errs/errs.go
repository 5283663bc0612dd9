package errs

var (
	SystemError = ErrorCode{Code: 507001, Msg: "系统错误"}
	InvalidRate = ErrorCode{Code: 507002, Msg: "佣金费率非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
