package common

// AuthorizationHeaderName carries the bearer token on authenticated calls.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
