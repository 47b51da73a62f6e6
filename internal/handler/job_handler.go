package handler

import (
	"errors"
	"net/http"
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// JobPostingInput is the payload for creating or updating a job posting.
type JobPostingInput struct {
	Title               string     `json:"title" binding:"required,max=200"`
	CompanyID           uint       `json:"company_id" binding:"required"`
	Description         string     `json:"description" binding:"required"`
	Requirements        string     `json:"requirements"`
	JobType             string     `json:"job_type" binding:"required,oneof=full_time part_time contract internship freelance"`
	ExperienceLevel     string     `json:"experience_level" binding:"omitempty,oneof=entry mid senior executive"`
	Location            string     `json:"location" binding:"required,max=200"`
	IsRemote            bool       `json:"is_remote"`
	SalaryMin           *float64   `json:"salary_min" binding:"omitempty,min=0"`
	SalaryMax           *float64   `json:"salary_max" binding:"omitempty,min=0"`
	Currency            string     `json:"currency" binding:"omitempty,len=3"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	ApplicationEmail    string     `json:"application_email" binding:"omitempty,email"`
	ApplicationURL      string     `json:"application_url" binding:"omitempty,url"`
}

// JobApplicationInput carries the applicant's materials.
type JobApplicationInput struct {
	CoverLetter string `json:"cover_letter"`
	Resume      string `json:"resume"`
}

// ApplicationStatusInput advances an application through the hiring pipeline.
type ApplicationStatusInput struct {
	Status string `json:"status" binding:"required,oneof=applied reviewed shortlisted interviewed offered hired rejected"`
}

// endregion

func applyJobInput(job *models.JobPosting, input *JobPostingInput) {
	job.Title = sanitizeText(input.Title)
	job.CompanyID = input.CompanyID
	job.Description = sanitizeText(input.Description)
	job.Requirements = sanitizeText(input.Requirements)
	job.JobType = models.JobType(input.JobType)
	if input.ExperienceLevel != "" {
		job.ExperienceLevel = models.ExperienceLevel(input.ExperienceLevel)
	}
	job.Location = sanitizeText(input.Location)
	job.IsRemote = input.IsRemote
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	if input.Currency != "" {
		job.Currency = input.Currency
	}
	job.ApplicationDeadline = input.ApplicationDeadline
	job.ApplicationEmail = input.ApplicationEmail
	job.ApplicationURL = input.ApplicationURL
}

// CreateJobPosting godoc
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body JobPostingInput true "Posting details"
// @Success      201  {object}  models.JobPosting
// @Failure      400  {object}  ErrorResponse
// @Router       /jobs [post]
func CreateJobPosting(c *gin.Context) {
	alumni := currentAlumni(c)

	var input JobPostingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMax < *input.SalaryMin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Salary range is inverted"})
		return
	}

	var company models.Company
	if err := database.DB.First(&company, input.CompanyID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company not found"})
		return
	}

	job := models.JobPosting{PostedByID: alumni.ID, IsActive: true}
	applyJobInput(&job, &input)

	if err := database.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job posting"})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobPostings godoc
// @Summary      List job postings
// @Description  Paginated listing of active postings; featured ones sort first.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        type      query string false "Job type"
// @Param        level     query string false "Experience level"
// @Param        remote    query string false "Set to 1 for remote-only"
// @Param        company   query int    false "Company ID"
// @Param        page      query int    false "Page number"
// @Param        limit     query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[models.JobPosting]
// @Router       /jobs [get]
func ListJobPostings(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.JobPosting{}).
		Preload("Company").
		Preload("PostedBy.User").
		Where("is_active = ?", true)
	if jobType := c.Query("type"); jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	if level := c.Query("level"); level != "" {
		query = query.Where("experience_level = ?", level)
	}
	if c.Query("remote") == "1" {
		query = query.Where("is_remote = ?", true)
	}
	if companyID := c.Query("company"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	response, err := Paginate[models.JobPosting](query.Order("is_featured DESC, created_at DESC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job postings"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetJobPosting godoc
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  models.JobPosting
// @Failure      404  {object}  ErrorResponse
// @Router       /jobs/{id} [get]
func GetJobPosting(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var job models.JobPosting
	err := database.DB.
		Preload("Company").
		Preload("PostedBy.User").
		First(&job, jobID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job posting not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// jobOwnedBy fetches a posting and verifies the alumni posted it.
func jobOwnedBy(c *gin.Context, alumniID uint) (*models.JobPosting, bool) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return nil, false
	}

	var job models.JobPosting
	if err := database.DB.First(&job, jobID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job posting not found"})
		return nil, false
	}
	if job.PostedByID != alumniID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the poster can manage this job"})
		return nil, false
	}
	return &job, true
}

// UpdateJobPosting godoc
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "Job ID"
// @Param        input body  JobPostingInput true  "Posting details"
// @Success      200  {object}  models.JobPosting
// @Failure      403  {object}  ErrorResponse
// @Router       /jobs/{id} [put]
func UpdateJobPosting(c *gin.Context) {
	alumni := currentAlumni(c)
	job, ok := jobOwnedBy(c, alumni.ID)
	if !ok {
		return
	}

	var input JobPostingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applyJobInput(job, &input)
	if err := database.DB.Save(job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job posting"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CloseJobPosting godoc
// @Summary      Deactivate a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  models.JobPosting
// @Failure      403  {object}  ErrorResponse
// @Router       /jobs/{id} [delete]
func CloseJobPosting(c *gin.Context) {
	alumni := currentAlumni(c)
	job, ok := jobOwnedBy(c, alumni.ID)
	if !ok {
		return
	}

	if err := database.DB.Model(job).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close job posting"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// ApplyForJob godoc
// @Summary      Apply for a job
// @Description  Closed postings reject with 400; applying to your own posting or twice is refused.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "Job ID"
// @Param        input body  JobApplicationInput true  "Application materials"
// @Success      201  {object}  models.JobApplication
// @Failure      400  {object}  ErrorResponse "Applications closed"
// @Failure      409  {object}  ErrorResponse "Already applied"
// @Router       /jobs/{id}/apply [post]
func ApplyForJob(c *gin.Context) {
	alumni := currentAlumni(c)
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var input JobApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var job models.JobPosting
	if err := database.DB.First(&job, jobID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job posting not found"})
		return
	}
	if !job.ApplicationOpen(timeNow()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This job is no longer accepting applications"})
		return
	}
	if job.PostedByID == alumni.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot apply to your own posting"})
		return
	}

	application := models.JobApplication{
		JobID:       job.ID,
		ApplicantID: alumni.ID,
		Status:      models.ApplicationApplied,
		CoverLetter: sanitizeText(input.CoverLetter),
		Resume:      input.Resume,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already applied for this job"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// WithdrawApplication godoc
// @Summary      Withdraw own application
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  models.JobApplication
// @Failure      404  {object}  ErrorResponse
// @Router       /jobs/{id}/apply [delete]
func WithdrawApplication(c *gin.Context) {
	alumni := currentAlumni(c)
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	var application models.JobApplication
	err := database.DB.
		Where("job_id = ? AND applicant_id = ?", jobID, alumni.ID).
		First(&application).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if err := database.DB.Model(&application).
		Update("status", models.ApplicationWithdrawn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw application"})
		return
	}

	c.JSON(http.StatusOK, application)
}

// ListJobApplications godoc
// @Summary      List a posting's applications
// @Description  Poster-only listing of all applications.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {array}   models.JobApplication
// @Failure      403  {object}  ErrorResponse
// @Router       /jobs/{id}/applications [get]
func ListJobApplications(c *gin.Context) {
	alumni := currentAlumni(c)
	job, ok := jobOwnedBy(c, alumni.ID)
	if !ok {
		return
	}

	var applications []models.JobApplication
	err := database.DB.
		Preload("Applicant.User").
		Where("job_id = ?", job.ID).
		Order("created_at ASC").
		Find(&applications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// UpdateApplicationStatus godoc
// @Summary      Advance an application's status
// @Description  Poster moves an application through the pipeline. Withdrawn applications cannot be advanced.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id            path  int                    true  "Job ID"
// @Param        applicationId path  int                    true  "Application ID"
// @Param        input         body  ApplicationStatusInput true  "New status"
// @Success      200  {object}  models.JobApplication
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /jobs/{id}/applications/{applicationId} [put]
func UpdateApplicationStatus(c *gin.Context) {
	alumni := currentAlumni(c)
	job, ok := jobOwnedBy(c, alumni.ID)
	if !ok {
		return
	}

	applicationID, ok := parseIDParam(c, "applicationId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var input ApplicationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.JobApplication
	err := database.DB.
		Where("id = ? AND job_id = ?", applicationID, job.ID).
		First(&application).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if application.Status == models.ApplicationWithdrawn {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application has been withdrawn"})
		return
	}

	if err := database.DB.Model(&application).
		Update("status", models.ApplicationStatus(input.Status)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	c.JSON(http.StatusOK, application)
}

// ListMyApplications godoc
// @Summary      List own job applications
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.JobApplication
// @Router       /jobs/applications/mine [get]
func ListMyApplications(c *gin.Context) {
	alumni := currentAlumni(c)

	var applications []models.JobApplication
	err := database.DB.
		Preload("Job.Company").
		Where("applicant_id = ?", alumni.ID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}
