// Package model defines the data structures used throughout clientdb.
//
// # Client
//
// The [Client] struct is the only persisted record:
//
//	type Client struct {
//	    ID    string // Optional UUID assigned on create
//	    Name  string // Required
//	    Email string // Required, must be a bare mail address
//	    Phone string // Required
//	    City  string // Required
//	}
//
// Records are stored as a JSON array and addressed by their position in it.
// [Validate] performs the required-field and email checks a form applies
// before saving.
package model
