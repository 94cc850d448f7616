package httpapi

// Result envelope shared by the web dashboard and the mobile app.
// Always sent with HTTP 200; success carries the outcome.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Client-facing messages. The panels match on these strings.
const (
	MsgLoginSuccessful    = "Login successful"
	MsgLoggedOut          = "Logged out"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized: Login required"
	MsgInvalidUser        = "Invalid User ID"
	MsgDatabaseError      = "Database error"
	MsgCommandSent        = "Command sent successfully"
	MsgInvalidAction      = "Invalid action"
)

func Ok(data any, message string) Result {
	return Result{Success: true, Data: data, Message: message}
}

func Fail(message string) Result {
	return Result{Success: false, Data: nil, Message: message}
}
