package apierrors

// HTTP 400 Bad Request.
const (
	ErrBadRequest           = "BAD_REQUEST"
	ErrInvalidID            = "INVALID_ID"
	ErrInvalidWithdrawal    = "INVALID_WITHDRAWAL_AMOUNT"
	ErrUnknownReplyTemplate = "UNKNOWN_REPLY_TEMPLATE"
)

// HTTP 404 Not Found.
const (
	ErrOrderNotFound        = "ORDER_NOT_FOUND"
	ErrConversationNotFound = "CONVERSATION_NOT_FOUND"
	ErrStatusNotFound       = "SYSTEM_STATUS_NOT_FOUND"
)

// HTTP 409 Conflict.
const (
	ErrStatusConflict = "STATUS_CONFLICT"
)

// HTTP 429 Too Many Requests.
const (
	ErrTooManyRequests = "TOO_MANY_REQUESTS"
)

// HTTP 500 Internal Server Error.
const (
	ErrInternal            = "INTERNAL_SERVER_ERROR"
	ErrDashboardStats      = "DASHBOARD_STATS_FAILED"
	ErrUpdateFailed        = "UPDATE_FAILED"
	ErrCreateFailed        = "CREATE_FAILED"
	ErrActivityUnavailable = "ACTIVITY_UNAVAILABLE"
)
