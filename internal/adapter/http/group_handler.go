package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	memberDomain "chamaledger/internal/domain/membership"
	"chamaledger/internal/usecase/group"
)

type GroupHandler struct{ uc *group.Usecase }

func NewGroupHandler(uc *group.Usecase) *GroupHandler { return &GroupHandler{uc: uc} }

type createGroupReq struct {
	Name               string `json:"name"                 validate:"required,max=120"`
	InterestRatePct    string `json:"interest_rate_pct"    validate:"required,dec2"`
	ContributionAmount string `json:"contribution_amount"  validate:"omitempty,dec2"`
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	creator, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}

	var req createGroupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	rate, err := decimal.NewFromString(req.InterestRatePct)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "InterestRatePct", Message: "must be a decimal"}},
		})
	}
	contribution := decimal.Zero
	if req.ContributionAmount != "" {
		if contribution, err = decimal.NewFromString(req.ContributionAmount); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "ContributionAmount", Message: "must be a decimal"}},
			})
		}
	}

	dto, err := h.uc.Create(c.Request().Context(), creator, group.CreateGroupInput{
		Name:               req.Name,
		InterestRatePct:    rate,
		ContributionAmount: contribution,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *GroupHandler) JoinGroup(c echo.Context) error {
	member, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	groupID := c.Param("group_id")
	if !reHex32.MatchString(groupID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid group_id path param"})
	}

	dto, err := h.uc.Join(c.Request().Context(), member, groupID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateMemberReq struct {
	Role   string `json:"role"   validate:"omitempty,oneof=member treasurer admin"`
	Active *bool  `json:"active"`
}

// UpdateMember changes a member's role, deactivates them, or both. Admin
// only; the usecase enforces that.
func (h *GroupHandler) UpdateMember(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Member-Id"})
	}
	groupID := c.Param("group_id")
	memberID := c.Param("member_id")
	if !reHex32.MatchString(groupID) || !reHex32.MatchString(memberID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid path params"})
	}

	var req updateMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if req.Role == "" && req.Active == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nothing to update: set role and/or active"})
	}

	ctx := c.Request().Context()
	var (
		dto *group.MembershipDTO
		err error
	)
	if req.Role != "" {
		dto, err = h.uc.SetMemberRole(ctx, actor, groupID, memberID, memberDomain.Role(req.Role))
		if err != nil {
			return writeDomainError(c, err)
		}
	}
	if req.Active != nil && !*req.Active {
		dto, err = h.uc.DeactivateMember(ctx, actor, groupID, memberID)
		if err != nil {
			return writeDomainError(c, err)
		}
	}
	return c.JSON(http.StatusOK, dto)
}
