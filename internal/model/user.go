// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. They are similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User is a directory entry that exercises hang off.
//
// The JSON shape is part of the public contract: clients expect the
// identifier under "_id", so the struct tag says so explicitly.
// CreatedAt is bookkeeping for the store and never leaves the server.
type User struct {
	ID        string    `json:"_id"      db:"id"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"-"        db:"created_at"`
}
