package handlers

import (
	"net/http"

	"hirehub/internal/jobs"
	"hirehub/internal/models"
	"hirehub/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

type postJobRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Location     string `json:"location" binding:"required"`
	Company      string `json:"company" binding:"required"`
	Requirements string `json:"requirements" binding:"required"`
}

type hiringStatusRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

type applicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=applied interviewing hired rejected"`
}

type applyForm struct {
	Name       string `form:"name" binding:"required"`
	Education  string `form:"education" binding:"required,oneof=Intermediate Graduate Post-Graduate"`
	Experience int    `form:"experience" binding:"min=0"`
	Skills     string `form:"skills" binding:"required"`
}

func listFilter(c *gin.Context) models.JobFilter {
	return models.JobFilter{
		Title:    c.Query("search"),
		Location: c.Query("location"),
		Company:  c.Query("company"),
	}
}

// ListJobs serves the listing page: all filters applied together in one
// query. Anonymous viewers get no saved flags.
func (h *Handler) ListJobs(c *gin.Context) {
	viewerID := ""
	if identity := middleware.Identity(c); identity != nil {
		viewerID = identity.User.ID
	}

	result, err := h.jobs.List(c.Request.Context(), listFilter(c), viewerID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": result})
}

// GetJob serves the detail page. The payload depends on who is asking: the
// owning recruiter sees the applicants, a candidate sees whether they have
// already applied.
func (h *Handler) GetJob(c *gin.Context) {
	viewerID := ""
	viewerIsRecruiter := false
	if identity := middleware.Identity(c); identity != nil {
		viewerID = identity.User.ID
		viewerIsRecruiter = identity.IsRecruiter()
	}

	detail, err := h.jobs.Get(c.Request.Context(), c.Param("id"), viewerID, viewerIsRecruiter)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) PostJob(c *gin.Context) {
	var req postJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	identity := middleware.Identity(c)

	job, err := h.jobs.Post(c.Request.Context(), identity.User.ID, jobs.PostInput{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Company:      req.Company,
		Requirements: req.Requirements,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *Handler) SetHiringStatus(c *gin.Context) {
	var req hiringStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	identity := middleware.Identity(c)

	if err := h.jobs.SetHiringStatus(c.Request.Context(), c.Param("id"), identity.User.ID, *req.IsOpen); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_open": *req.IsOpen})
}

func (h *Handler) DeleteJob(c *gin.Context) {
	identity := middleware.Identity(c)

	if err := h.jobs.Delete(c.Request.Context(), c.Param("id"), identity.User.ID); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Apply handles the multipart application form with the resume attached.
func (h *Handler) Apply(c *gin.Context) {
	var form applyForm
	if err := c.ShouldBind(&form); err != nil {
		h.bindError(c, err)
		return
	}

	fileHeader, ok := h.formFile(c, "resume")
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

	app, err := h.jobs.Apply(c.Request.Context(), identity.User.ID, c.Param("id"), jobs.ApplyInput{
		Name:       form.Name,
		Education:  form.Education,
		Experience: form.Experience,
		Skills:     form.Skills,
		Resume:     file,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// SetApplicationStatus moves an applicant through the pipeline, owner only.
func (h *Handler) SetApplicationStatus(c *gin.Context) {
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	identity := middleware.Identity(c)

	if err := h.jobs.SetApplicationStatus(c.Request.Context(), c.Param("id"), identity.User.ID, req.Status); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) Applications(c *gin.Context) {
	identity := middleware.Identity(c)

	apps, err := h.jobs.Applications(c.Request.Context(), c.Param("id"), identity.User.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// MyJobs branches on role: recruiters get their postings with the listing
// filters, everyone else gets their applications.
func (h *Handler) MyJobs(c *gin.Context) {
	identity := middleware.Identity(c)

	if identity.IsRecruiter() {
		postings, err := h.jobs.MyPostings(c.Request.Context(), identity.User.ID, listFilter(c))
		if err != nil {
			h.serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": postings})
		return
	}

	apps, err := h.jobs.MyApplications(c.Request.Context(), identity.User.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) SaveJob(c *gin.Context) {
	identity := middleware.Identity(c)

	if err := h.jobs.Save(c.Request.Context(), identity.User.ID, c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *Handler) UnsaveJob(c *gin.Context) {
	identity := middleware.Identity(c)

	if err := h.jobs.Unsave(c.Request.Context(), identity.User.ID, c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": false})
}

func (h *Handler) SavedJobs(c *gin.Context) {
	identity := middleware.Identity(c)

	result, err := h.jobs.SavedJobs(c.Request.Context(), identity.User.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": result})
}
