package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
)

type listServiceTypesQuery struct {
	Active   string `form:"active"`
	Category string `form:"category"`
}

func (s *Server) ListServiceTypes(c *gin.Context) {
	var query listServiceTypesQuery
	if err := bindQuery(c, &query); err != nil {
		AbortWithError(c, err)
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, invalidQueryParam("active", "must be true or false"))
		return
	}

	filter := servicetypedomain.ListFilter{ActiveOnly: active != nil && *active}
	if raw := strings.TrimSpace(query.Category); raw != "" {
		category, ok := servicetypedomain.ParseCategory(raw)
		if !ok {
			AbortWithError(c, servicetypedomain.ErrInvalidCategory)
			return
		}
		filter.Category = category
	}

	items, err := s.serviceTypeSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) CreateServiceType(c *gin.Context) {
	var req servicetypedomain.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	item, err := s.serviceTypeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) GetServiceType(c *gin.Context) {
	item, err := s.serviceTypeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateServiceType(c *gin.Context) {
	var req servicetypedomain.UpdateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	item, err := s.serviceTypeSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteServiceType(c *gin.Context) {
	if err := s.serviceTypeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
