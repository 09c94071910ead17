// Package handler contains the HTTP request handlers for the API.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (path params, JSON body, context identity)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, JSON body)
//
// Handlers do NOT contain business logic — they are the glue between HTTP
// and the services. Each request body is decoded into an explicit input
// struct that enumerates exactly the fields the endpoint accepts
// (unknown fields are rejected at decode time) and carries the
// validation rules as struct tags.
package handler

import "net/http"

// HandleRoot returns the API's friendly greeting.
//
// HTTP: GET /
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Welcome to the REST API project!")
}
