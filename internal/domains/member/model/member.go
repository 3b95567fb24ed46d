package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/optional"
)

// Member is the persisted row of the members table.
type Member struct {
	ID             int64   `db:"id"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	MembershipDate *string `db:"membership_date"`
}

type MemberResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	MembershipDate *string `json:"membership_date"`
}

func (m Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		MembershipDate: m.MembershipDate,
	}
}

type MemberFilter struct {
	Search string
}

// MemberRequest is the body of POST /members and PUT /members/:id.
// The email is stored as given, no format check is applied.
type MemberRequest struct {
	Name           *string         `json:"name"`
	Email          *string         `json:"email"`
	MembershipDate optional.String `json:"membership_date"`
}

func (r MemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NotNil.Error("'name' is a required property")),
		validation.Field(&r.Email, validation.NotNil.Error("'email' is a required property")),
	)
}

type ListMembersRequest struct {
	Search  string
	Page    int
	PerPage int
}

func GenerateMemberDetailCacheKey(id int64) string {
	return fmt.Sprintf("member:detail:%d", id)
}
