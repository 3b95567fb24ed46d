package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"library-api/internal/domains/member/model"
	"library-api/internal/infrastructure/database"
)

const tableMembers = "members"

type memberRepository struct {
	store *database.Store
}

func NewSQLRepository(store *database.Store) RepositoryInterface {
	return &memberRepository{store: store}
}

func (r *memberRepository) ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	ds := r.store.DB().
		From(tableMembers).
		Prepared(true).
		Order(goqu.I("id").Asc())

	if filter.Search != "" {
		ds = ds.Where(goqu.Or(
			r.store.Contains("name", filter.Search),
			r.store.Contains("email", filter.Search),
		))
	}

	members := make([]model.Member, 0)
	if err := ds.ScanStructsContext(ctx, &members); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (r *memberRepository) GetMemberByID(ctx context.Context, id int64) (*model.Member, error) {
	var member model.Member
	found, err := r.store.DB().
		From(tableMembers).
		Prepared(true).
		Where(goqu.Ex{"id": id}).
		ScanStructContext(ctx, &member)
	if err != nil {
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	if !found {
		return nil, model.ErrMemberNotFound
	}
	return &member, nil
}

func (r *memberRepository) CreateMember(ctx context.Context, member *model.Member) error {
	ds := r.store.DB().
		Insert(tableMembers).
		Prepared(true).
		Rows(goqu.Record{
			"name":            member.Name,
			"email":           member.Email,
			"membership_date": database.Nullable(member.MembershipDate),
		})

	id, err := r.store.InsertReturningID(ctx, ds)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	member.ID = id
	return nil
}

func (r *memberRepository) UpdateMember(ctx context.Context, member *model.Member) error {
	res, err := r.store.DB().
		Update(tableMembers).
		Prepared(true).
		Set(goqu.Record{
			"name":            member.Name,
			"email":           member.Email,
			"membership_date": database.Nullable(member.MembershipDate),
		}).
		Where(goqu.Ex{"id": member.ID}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update member %d: %w", member.ID, err)
	}

	n, err := database.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) DeleteMember(ctx context.Context, id int64) error {
	res, err := r.store.DB().
		Delete(tableMembers).
		Prepared(true).
		Where(goqu.Ex{"id": id}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}

	n, err := database.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}
