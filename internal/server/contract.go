package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
)

func (s *Server) ListContracts(c *gin.Context) {
	var req contractdomain.ListRequest
	if err := bindQuery(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	contracts, err := s.contractSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contracts})
}

func (s *Server) CreateContract(c *gin.Context) {
	var req contractdomain.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	contract, err := s.contractSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": contract})
}

func (s *Server) GetContract(c *gin.Context) {
	contract, err := s.contractSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contract})
}

func (s *Server) UpdateContract(c *gin.Context) {
	var req contractdomain.UpdateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	contract, err := s.contractSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contract})
}

func (s *Server) ActivateContract(c *gin.Context) {
	contract, err := s.contractSvc.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contract})
}

// TerminateContract accepts an empty body; reason and date are optional.
func (s *Server) TerminateContract(c *gin.Context) {
	var req contractdomain.TerminateRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	contract, err := s.contractSvc.Terminate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contract})
}

func (s *Server) ExpireContracts(c *gin.Context) {
	result, err := s.contractSvc.Expire(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetContractDetail(c *gin.Context) {
	detail, err := s.detailSvc.Contract(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}
