// Package dashboard implements the category and bookmark services.
//
// # Invariants
//
// Exactly one default category exists, identified by the reserved name
// paired with the sentinel icon. It cannot be deleted, renamed, or made
// private. Every operation that observes it missing recreates it, and
// bookmarks whose category reference was nulled by a category delete are
// pointed back at it.
//
// Category names and bookmark URLs are unique. Each check-then-write runs in
// one transaction and the unique indexes back it up, so concurrent writers
// get ErrDuplicateName or ErrDuplicateURL instead of a second row.
//
// # Ordering
//
// Higher priority sorts first. New rows get max+1 so they land on top.
// Reorder operations rewrite priorities from a full id list, see package
// ordering.
//
// # Errors
//
// Listing operations never fail: categories degrade to a single placeholder
// and bookmarks to an empty list. Other operations return the sentinel
// errors in errors.go, or an error matching database.ErrStoreUnavailable.
package dashboard
