package handlers

import (
	"net/http"

	"hirehub/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

type companyForm struct {
	Name string `form:"name" binding:"required"`
}

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.jobs.Companies(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// AddCompany handles the add-company form: name plus a logo image. The
// blob layer rejects non-image uploads.
func (h *Handler) AddCompany(c *gin.Context) {
	var form companyForm
	if err := c.ShouldBind(&form); err != nil {
		h.bindError(c, err)
		return
	}

	fileHeader, ok := h.formFile(c, "logo")
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.serviceError(c, err)
		return
	}
	defer file.Close()

	identity := middleware.Identity(c)

	company, err := h.jobs.AddCompany(c.Request.Context(), identity.User.ID, form.Name, file)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}
