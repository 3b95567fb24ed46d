package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"library-api/internal/domains/member/model"
	"library-api/pkg/pagination"
)

// ServiceInterface is the business contract of the member domain.
type ServiceInterface interface {
	ListMembers(ctx context.Context, req model.ListMembersRequest) (*pagination.Page[model.MemberResponse], error)
	GetMember(ctx context.Context, id int64) (*model.MemberResponse, error)
	CreateMember(ctx context.Context, req model.MemberRequest) (*model.MemberResponse, error)
	UpdateMember(ctx context.Context, id int64, req model.MemberRequest) (*model.MemberResponse, error)
	DeleteMember(ctx context.Context, id int64) error
	ExportMembers(ctx context.Context, search string) (*excelize.File, error)
}
