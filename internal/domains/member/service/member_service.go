package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"library-api/internal/domains/member/model"
	"library-api/internal/domains/member/repository"
	"library-api/pkg/cache"
	"library-api/pkg/export"
	"library-api/pkg/pagination"
)

type MemberService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewMemberService(repo repository.RepositoryInterface, cache cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &MemberService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *MemberService) ListMembers(ctx context.Context, req model.ListMembersRequest) (*pagination.Page[model.MemberResponse], error) {
	if req.Page < 1 || req.PerPage < 1 {
		return nil, pagination.ErrInvalidPageParams
	}

	members, err := s.repo.ListMembers(ctx, model.MemberFilter{Search: req.Search})
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(members, req.Page, req.PerPage, model.Member.ToResponse)
	return &page, nil
}

func (s *MemberService) GetMember(ctx context.Context, id int64) (*model.MemberResponse, error) {
	cacheKey := model.GenerateMemberDetailCacheKey(id)

	var cached model.MemberResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[MemberService] cache get failed")
	}
	if found {
		return &cached, nil
	}

	// The lease is taken before the read so an update or delete landing in between discards the fill.
	token, err := s.cache.Lease(ctx, cacheKey, cache.LeaseTTL)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[MemberService] cache lease failed")
	}

	member, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := member.ToResponse()
	if token == "" {
		return &resp, nil
	}
	if err := s.cache.Fill(ctx, cacheKey, token, resp, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[MemberService] cache fill failed")
	}
	return &resp, nil
}

func (s *MemberService) CreateMember(ctx context.Context, req model.MemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	member := &model.Member{
		Name:           *req.Name,
		Email:          *req.Email,
		MembershipDate: req.MembershipDate.Or(nil),
	}
	if err := s.repo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	log.Info().Int64("member_id", member.ID).Msg("[MemberService] member created")
	resp := member.ToResponse()
	return &resp, nil
}

// UpdateMember replaces name and email. membership_date is kept when the key is omitted
// and cleared when it is null.
func (s *MemberService) UpdateMember(ctx context.Context, id int64, req model.MemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = *req.Name
	existing.Email = *req.Email
	existing.MembershipDate = req.MembershipDate.Or(existing.MembershipDate)

	if err := s.repo.UpdateMember(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	resp := existing.ToResponse()
	return &resp, nil
}

func (s *MemberService) DeleteMember(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMember(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	log.Info().Int64("member_id", id).Msg("[MemberService] member deleted")
	return nil
}

func (s *MemberService) ExportMembers(ctx context.Context, search string) (*excelize.File, error) {
	members, err := s.repo.ListMembers(ctx, model.MemberFilter{Search: search})
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(members))
	for _, m := range members {
		rows = append(rows, []interface{}{m.ID, m.Name, m.Email, export.StringOrNil(m.MembershipDate)})
	}
	return export.Workbook("Members", []string{"ID", "Name", "Email", "Membership Date"}, rows)
}

func (s *MemberService) invalidate(ctx context.Context, id int64) {
	cacheKey := model.GenerateMemberDetailCacheKey(id)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[MemberService] cache invalidation failed")
	}
}
