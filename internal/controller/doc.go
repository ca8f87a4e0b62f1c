// Package controller holds the registry's interaction logic independent of
// any rendering surface.
//
// The form moves between three states:
//
//	Closed --OpenCreate--> Create --Save/Close--> Closed
//	Closed --OpenEdit(i)-> Edit(i) --Save/Close--> Closed
//
// Save validates the values returned by [View.FormValues]; an invalid form
// stays open and nothing is written. Rows are rebuilt from a fresh read on
// every render, and their action ids ("edit-<i>", "delete-<i>") are only valid
// until the next mutation.
package controller
