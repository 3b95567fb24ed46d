package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domains/member/model"
	"library-api/internal/infrastructure/cache"
	"library-api/internal/shared/optional"
)

type memRepo struct {
	members   map[int64]model.Member
	nextID    int64
	afterRead func()
}

func newMemRepo() *memRepo { return &memRepo{members: map[int64]model.Member{}} }

func (r *memRepo) ListMembers(_ context.Context, _ model.MemberFilter) ([]model.Member, error) {
	out := make([]model.Member, 0, len(r.members))
	for id := int64(1); id <= r.nextID; id++ {
		if m, ok := r.members[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) GetMemberByID(_ context.Context, id int64) (*model.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return &m, nil
}

func (r *memRepo) CreateMember(_ context.Context, m *model.Member) error {
	r.nextID++
	m.ID = r.nextID
	r.members[m.ID] = *m
	return nil
}

func (r *memRepo) UpdateMember(_ context.Context, m *model.Member) error {
	if _, ok := r.members[m.ID]; !ok {
		return model.ErrMemberNotFound
	}
	r.members[m.ID] = *m
	return nil
}

func (r *memRepo) DeleteMember(_ context.Context, id int64) error {
	if _, ok := r.members[id]; !ok {
		return model.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

// leaseCache grants one lease per key; Delete revokes it.
type leaseCache struct {
	cache.NoopCache
	values map[string][]byte
	leases map[string]string
}

func newLeaseCache() *leaseCache {
	return &leaseCache{values: map[string][]byte{}, leases: map[string]string{}}
}

func (c *leaseCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *leaseCache) Lease(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := c.leases[key]; ok {
		return "", nil
	}
	c.leases[key] = key
	return key, nil
}

func (c *leaseCache) Fill(_ context.Context, key, token string, value interface{}, _ time.Duration) error {
	if c.leases[key] != token {
		return nil
	}
	delete(c.leases, key)
	raw, err := json.Marshal(value)
	c.values[key] = raw
	return err
}

func (c *leaseCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		delete(c.leases, k)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestMemberService_GetMember_UpdateDuringRead(t *testing.T) {
	repo := newMemRepo()
	c := newLeaseCache()
	svc := NewMemberService(repo, c, time.Minute)
	ctx := context.Background()

	_, err := svc.CreateMember(ctx, model.MemberRequest{Name: strPtr("Ada"), Email: strPtr("ada@example.com")})
	require.NoError(t, err)

	repo.afterRead = func() {
		_, err := svc.UpdateMember(ctx, 1, model.MemberRequest{Name: strPtr("Ada Lovelace"), Email: strPtr("ada@example.com")})
		require.NoError(t, err)
	}
	_, err = svc.GetMember(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, c.values)

	got, err := svc.GetMember(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)

	cached, err := svc.GetMember(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, got, cached)
	assert.Len(t, c.values, 1)
}

func TestMemberService_CRUD(t *testing.T) {
	svc := NewMemberService(newMemRepo(), cache.NoopCache{}, time.Minute)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, model.MemberRequest{
		Name:           strPtr("Alice"),
		Email:          strPtr("alice@example.com"),
		MembershipDate: optional.Of("2023-01-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	updated, err := svc.UpdateMember(ctx, created.ID, model.MemberRequest{
		Name:  strPtr("Alice B."),
		Email: strPtr("alice@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	require.NotNil(t, updated.MembershipDate)
	assert.Equal(t, "2023-01-15", *updated.MembershipDate)

	got, err := svc.GetMember(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, svc.DeleteMember(ctx, created.ID))
	_, err = svc.GetMember(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrMemberNotFound)
}

func TestMemberService_Validation(t *testing.T) {
	svc := NewMemberService(newMemRepo(), cache.NoopCache{}, time.Minute)

	_, err := svc.CreateMember(context.Background(), model.MemberRequest{})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.EqualError(t, verrs["name"], "'name' is a required property")
	assert.EqualError(t, verrs["email"], "'email' is a required property")
}

func TestMemberService_ListMembers_Pages(t *testing.T) {
	repo := newMemRepo()
	svc := NewMemberService(repo, cache.NoopCache{}, time.Minute)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := svc.CreateMember(ctx, model.MemberRequest{Name: strPtr(name), Email: strPtr(name + "@x.io")})
		require.NoError(t, err)
	}

	page, err := svc.ListMembers(ctx, model.ListMembersRequest{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "E", page.Items[0].Name)
}
