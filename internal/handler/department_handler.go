package handler

import (
	"net/http"

	"storeflow/internal/service"
	"storeflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departments *service.DepartmentService
}

func NewDepartmentHandler(departments *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

func (h *DepartmentHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.GET("/departments", auth, h.ListDepartments)
}

// ListDepartments returns the departments a request can be raised from
// @Summary      List departments
// @Tags         departments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.departments.List()))
}
