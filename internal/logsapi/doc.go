// Package logsapi is the HTTP client for the log extraction service.
//
// The service exposes four JSON endpoints under <base>/logs:
//
//	GET  /logs/instances                              → ["srv-1", "srv-2"]
//	GET  /logs/extracted-dates/{instanceId}           → ["20240101", ...]
//	POST /logs/extract           {"instanceId": "..."} → {"message": "..."}
//	GET  /logs/exceptions-date?instanceId=..&date=..  → [Exception, ...]
//
// Every method takes a context and treats transport errors, status codes
// of 400 and above, and undecodable bodies as failures. Nothing is retried;
// callers decide what a failure means for their state.
//
// Requests carry no timeout unless WithTimeout is supplied.
package logsapi
