package values

// Status strings returned by helpers and mapped to HTTP
// status codes by util.StatusCode.
const (
	Success        = "success"
	Created        = "created"
	Error          = "internal-error"
	BadRequestBody = "bad-request"
	Unprocessable  = "unprocessable"
	NotAllowed     = "not-allowed"
	Conflict       = "conflict"
	NotFound       = "not-found"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
	ActiveLogin    = "active-login"

	SystemErr = "Something went wrong"
)

// Request headers used for tracing.
const (
	HeaderRequestID     = "X-Request-Id"
	HeaderRequestSource = "X-Request-Source"
)

type contextKey string

// Context keys set by middleware.
const (
	ContextTracingKey  = contextKey("tracing-context")
	ContextUserIDKey   = contextKey("user_id")
	ContextUserRoleKey = contextKey("user_role")
)

// User roles.
const (
	RoleCitizen = "CITIZEN"
	RoleAdmin   = "ADMIN"
	RoleWorker  = "WORKER"
)

// Report statuses.
const (
	StatusPending   = "pending"
	StatusEscalated = "escalated"
	StatusResolved  = "resolved"
)

// Vote directions.
const (
	VoteSupport = "support"
	VoteOppose  = "oppose"
)
