// Package api assembles the HTTP server for the plugin marketplace
// service: routing, middleware and health endpoints. The request handlers
// themselves live next to the domain logic in pkg/marketplace.
package api
