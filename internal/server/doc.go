// Package server provides HTTP routing, middleware, request gating, and OAuth
// handling for the resolution API.
package server
