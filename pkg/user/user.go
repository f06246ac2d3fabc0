package user

// User is the caller as identified by the gateway in front of the service.
// Token is the raw Authorization header, forwarded to the finance API.
type User struct {
	Uid   string
	Token string
}
