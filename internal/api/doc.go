// Package api exposes the HTTP surface of the service: authentication,
// review queue and answer submission, level progression, and statistics
// endpoints. Handlers validate and decode requests, delegate to the
// service layer, and translate the results (including domain and store
// errors) into JSON responses with appropriate status codes.
package api
