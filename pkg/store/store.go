// Package store defines the persistence interfaces for Lodged.
package store

// Store is an interface for managing members, collectors, payment requests,
// and login accounts.
type Store interface {
	MemberStore
	CollectorStore
	PaymentStore
	UserStore
	SessionStore
}
