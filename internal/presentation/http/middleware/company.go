package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/mwaniki/serviceos-api/internal/infrastructure/repository"
	"github.com/mwaniki/serviceos-api/internal/presentation/http/dto/response"
)

// CompanyMiddleware propagates the authenticated user's company into the
// request context so repositories can scope queries to it.
func CompanyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyIDVal, exists := c.Get("company_id")
		if !exists {
			c.Next()
			return
		}

		companyID, ok := companyIDVal.(uuid.UUID)
		if !ok || companyID == uuid.Nil {
			c.Next()
			return
		}

		// Set company ID in request context (for services/repositories)
		ctx := infraRepo.WithCompany(c.Request.Context(), companyID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCompanyID retrieves the company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// RequireCompany ensures a valid company context exists
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, exists := c.Get("company_id")
		if !exists {
			response.BadRequest(c, "Company context required")
			c.Abort()
			return
		}

		id, ok := companyID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid company context")
			c.Abort()
			return
		}

		c.Next()
	}
}
