// Package client is a typed HTTP client for the bookclub API.
//
// It wraps resty with per-resource methods, carries the bearer token issued
// at register/login, and maps non-2xx responses to sentinel errors that can
// be tested with errors.Is.
package client
