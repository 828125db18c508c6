// Package main provides the entry point for the GoBancaUno backend.
// It runs a Fiber web service exposing the account-opening workflow:
// advisors register account requests for bank clients and operations
// directors approve or reject them. Persistence is handled with gorm,
// authentication with role-scoped signed tokens.
package main
