package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/boardinghouse/internal/report/domain"
)

func (s *Server) RevenueByMonth(c *gin.Context) {
	var req reportdomain.RevenueByMonthRequest
	if err := bindQuery(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	months, err := s.reportSvc.RevenueByMonth(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": months})
}

func (s *Server) RevenueByBoardingHouse(c *gin.Context) {
	var req reportdomain.RevenueByBoardingHouseRequest
	if err := bindQuery(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	houses, err := s.reportSvc.RevenueByBoardingHouse(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": houses})
}

func (s *Server) TenantsCurrentlyRenting(c *gin.Context) {
	tenants, err := s.reportSvc.TenantsCurrentlyRenting(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenants})
}

func (s *Server) OutstandingDebts(c *gin.Context) {
	debts, err := s.reportSvc.OutstandingDebts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": debts})
}

func (s *Server) GetDashboard(c *gin.Context) {
	stats, err := s.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
