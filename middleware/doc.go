// Package middleware adapts tokenauth.Engine validation to net/http.
//
// [Guard] reads the Authorization bearer token, validates it against the
// caller's client IP ([ClientIP]) and stores the resulting [Principal] in the
// request context. Every accept/reject decision is delegated to
// Engine.Validate; the middleware never parses tokens itself.
package middleware
