package store

import (
	"context"

	"github.com/lodgeworks/lodged/pkg/db"
	"github.com/lodgeworks/lodged/pkg/db/models"
)

// MemberSearch narrows and paginates a directory listing. The zero value
// matches every member.
type MemberSearch struct {
	// Term matches case-insensitively as a substring of the full name, the
	// member number, or the collector name.
	Term string

	// Collector, when non-empty, restricts results to members owned by the
	// named collector.
	Collector string

	// Limit and Offset paginate the result. A zero Limit returns everything.
	Limit  int
	Offset int
}

// MemberStore is an interface for reading the member directory.
type MemberStore interface {
	ListMembers(ctx context.Context, h db.Handler, search MemberSearch) ([]models.Member, error)
	CountMembers(ctx context.Context, h db.Handler, search MemberSearch) (int64, error)
	GetMemberByID(ctx context.Context, h db.Handler, id int64) (models.Member, error)
	GetMemberByNumber(ctx context.Context, h db.Handler, number string) (models.Member, error)
	CreateMember(ctx context.Context, h db.Handler, number string, fullName string, collector string) (models.Member, error)
}

// CollectorStore is an interface for reading collectors.
type CollectorStore interface {
	ListCollectors(ctx context.Context, h db.Handler) ([]models.Collector, error)
	FindCollectorByName(ctx context.Context, h db.Handler, name string) (models.Collector, error)
	FindCollectorByMemberNumber(ctx context.Context, h db.Handler, number string) (models.Collector, error)
	CreateCollector(ctx context.Context, h db.Handler, name string, memberNumber string) (models.Collector, error)
}
