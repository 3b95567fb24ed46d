package repository

import (
	"context"

	"library-api/internal/domains/member/model"
)

// RepositoryInterface is the persistence contract of the member domain.
type RepositoryInterface interface {
	// ListMembers returns every member matching filter in ascending id order.
	ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error)
	GetMemberByID(ctx context.Context, id int64) (*model.Member, error)
	// CreateMember inserts member and sets its ID.
	CreateMember(ctx context.Context, member *model.Member) error
	UpdateMember(ctx context.Context, member *model.Member) error
	DeleteMember(ctx context.Context, id int64) error
}
