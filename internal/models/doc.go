// Package models defines domain entities and persistence interfaces for the
// import history store.
package models
