package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/domains/member/model"
	"library-api/internal/domains/member/service"
	"library-api/internal/shared/response"
	"library-api/pkg/export"
	"library-api/pkg/pagination"
)

type MemberHandler struct {
	service service.ServiceInterface
}

func NewMemberHandler(svc service.ServiceInterface) *MemberHandler {
	return &MemberHandler{service: svc}
}

// ListMembers GET /members?search=&page=&per_page=
func (h *MemberHandler) ListMembers(c *gin.Context) {
	page, perPage, err := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	if err != nil {
		model.HandleMemberError(c, err)
		return
	}

	result, err := h.service.ListMembers(c.Request.Context(), model.ListMembersRequest{
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		model.HandleMemberError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// GetMember GET /members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		model.HandleMemberError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, member)
}

// CreateMember POST /members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleMemberError(c, model.ErrInvalidPayload)
		return
	}

	member, err := h.service.CreateMember(c.Request.Context(), req)
	if err != nil {
		model.HandleMemberError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, member)
}

// UpdateMember PUT /members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleMemberError(c, model.ErrInvalidPayload)
		return
	}

	member, err := h.service.UpdateMember(c.Request.Context(), id, req)
	if err != nil {
		model.HandleMemberError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, member)
}

// DeleteMember DELETE /members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMember(c.Request.Context(), id); err != nil {
		model.HandleMemberError(c, err)
		return
	}

	response.NoContent(c)
}

// ExportMembers GET /members/export?search=
func (h *MemberHandler) ExportMembers(c *gin.Context) {
	f, err := h.service.ExportMembers(c.Request.Context(), c.Query("search"))
	if err != nil {
		model.HandleMemberError(c, err)
		return
	}

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", `attachment; filename="members.xlsx"`)
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, f); err != nil {
		log.Error().Err(err).Msg("[MemberHandler] write export failed")
	}
}

// parseID reads the :id path parameter. Anything that is not an integer names no member.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		model.HandleMemberError(c, model.ErrMemberNotFound)
		return 0, false
	}
	return id, true
}
