package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/boardinghouse/internal/auth"
)

// GetProfile returns the verified principal of the request.
func (s *Server) GetProfile(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, errMissingToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": principal})
}

func (s *Server) PortalMe(c *gin.Context) {
	tenant, err := s.portalSvc.Me(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenant})
}

func (s *Server) PortalContracts(c *gin.Context) {
	contracts, err := s.portalSvc.Contracts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contracts})
}

func (s *Server) PortalInvoices(c *gin.Context) {
	invoices, err := s.portalSvc.Invoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) PortalInvoice(c *gin.Context) {
	invoice, err := s.portalSvc.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) PortalPayments(c *gin.Context) {
	payments, err := s.portalSvc.Payments(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}
