package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005

	// 订单模块错误 200xx
	ErrOrderNotFound     = 20001
	ErrInvalidService    = 20002
	ErrInvalidUnit       = 20003
	ErrInvalidStatus     = 20004
	ErrOrderCreateFailed = 20005

	// 支付模块错误 300xx
	ErrPaymentNotFound  = 30001
	ErrPaymentConflict  = 30002
	ErrInvalidWebhook   = 30003
	ErrUnsupportedPay   = 30004

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
