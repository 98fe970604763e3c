package common

// AuthorizationHeader is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a client-generated id used to correlate a request
// with server-side logs.
const RequestIDHeader = "X-Request-Id"
