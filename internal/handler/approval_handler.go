package handler

import (
	"errors"
	"net/http"

	"storeflow/internal/middleware"
	"storeflow/internal/service"
	"storeflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// RegisterRoutes binds the approval endpoints behind the identity middleware
func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	approvals := router.Group("/approval-requests", auth)
	{
		approvals.POST("", h.CreateApprovalRequest)
		approvals.GET("", h.ListApprovalRequests)
		approvals.PUT("/:id", h.TransitionApprovalRequest)
	}
}

// CreateApprovalRequest submits a new request on behalf of the caller
// @Summary      Create approval request
// @Description  Creates a Pending approval request. The requestor is the authenticated caller.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateApprovalRequestDTO  true  "Approval request"
// @Success      201      {object}  response.Response{data=model.ApprovalRequest}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /approval-requests [post]
func (h *ApprovalHandler) CreateApprovalRequest(c *gin.Context) {
	var req service.CreateApprovalRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	approval, err := h.approvalService.CreateApprovalRequest(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, approval))
}

// ListApprovalRequests returns the requests awaiting the caller and the ones the caller submitted
// @Summary      List approval requests
// @Tags         approvals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.ApprovalLists}
// @Failure      401  {object}  response.Response
// @Router       /approval-requests [get]
func (h *ApprovalHandler) ListApprovalRequests(c *gin.Context) {
	lists, err := h.approvalService.ListForUser(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, lists))
}

// TransitionApprovalRequest approves or rejects a pending request
// @Summary      Approve or reject
// @Description  Only the designated approver may transition a Pending request. Rejections require a comment.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Approval request ID"
// @Param        payload  body      service.TransitionRequestDTO  true  "New status and optional comment"
// @Success      200      {object}  response.Response{data=model.ApprovalRequest}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /approval-requests/{id} [put]
func (h *ApprovalHandler) TransitionApprovalRequest(c *gin.Context) {
	// an undecodable body is reported only after the lookup and permission checks
	var req service.TransitionRequestDTO
	bindErr := c.ShouldBindJSON(&req)
	if bindErr != nil {
		req = service.TransitionRequestDTO{}
	}

	approval, err := h.approvalService.TransitionRequest(c.Request.Context(), c.Param("id"), middleware.CurrentIdentity(c), req)
	if err != nil {
		if bindErr != nil && errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+bindErr.Error()))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, approval))
}
