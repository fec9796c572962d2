// Package model defines the billing domain entities exchanged between
// the repository and handler layers.
//
// The structs here mirror the database rows and carry the JSON tags
// used in API responses, so a repository result can be placed directly
// into a response envelope without remapping.
package model
