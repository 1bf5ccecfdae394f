package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
)

func (s *Server) ListBoardingHouses(c *gin.Context) {
	var req boardinghousedomain.ListRequest
	if err := bindQuery(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	houses, err := s.houseSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": houses})
}

func (s *Server) CreateBoardingHouse(c *gin.Context) {
	var req boardinghousedomain.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	house, err := s.houseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": house})
}

func (s *Server) GetBoardingHouse(c *gin.Context) {
	house, err := s.houseSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": house})
}

func (s *Server) UpdateBoardingHouse(c *gin.Context) {
	var req boardinghousedomain.UpdateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	house, err := s.houseSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": house})
}

func (s *Server) DeleteBoardingHouse(c *gin.Context) {
	if err := s.houseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
