package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
)

func (s *Server) ListPayments(c *gin.Context) {
	var req paymentdomain.ListRequest
	if err := bindQuery(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	payments, err := s.paymentSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req paymentdomain.CreateRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	payment, err := s.paymentSvc.Apply(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": payment})
}

func (s *Server) GetPayment(c *gin.Context) {
	payment, err := s.paymentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}

func (s *Server) ListPaymentsByInvoice(c *gin.Context) {
	payments, err := s.paymentSvc.ListByInvoice(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) GetPaymentReceipt(c *gin.Context) {
	receipt, err := s.paymentSvc.RenderReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.FileName))
	c.Data(http.StatusOK, contentTypePDF, receipt.Content)
}
