package handler

import (
	"net/http"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// DirectoryEntry is the public directory representation of an alumni.
type DirectoryEntry struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	StudentID      string `json:"student_id"`
	GraduationYear string `json:"graduation_year,omitempty"`
	Degree         string `json:"degree,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	Company        string `json:"company,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
	IsMentor       bool   `json:"is_mentor"`
	WillingToHire  bool   `json:"willing_to_hire"`
	AllowContact   bool   `json:"allow_contact"`
}

// AlumniProfileInput updates the caller's own alumni profile.
type AlumniProfileInput struct {
	JobTitle         string                   `json:"job_title"`
	EmploymentStatus models.EmploymentStatus  `json:"employment_status" binding:"omitempty,oneof=employed unemployed self_employed student retired"`
	Industry         string                   `json:"industry"`
	LinkedinProfile  string                   `json:"linkedin_profile"`
	CurrentCity      string                   `json:"current_city"`
	CurrentCountry   string                   `json:"current_country"`
	Bio              string                   `json:"bio"`
	Achievements     string                   `json:"achievements"`
	Skills           string                   `json:"skills"`
	PrivacyLevel     models.PrivacyLevel      `json:"privacy_level" binding:"omitempty,oneof=public limited private"`
	AllowContact     *bool                    `json:"allow_contact"`
	IsMentor         *bool                    `json:"is_mentor"`
	IsJobSeeker      *bool                    `json:"is_job_seeker"`
	WillingToHire    *bool                    `json:"willing_to_hire"`
	CurrentCompanyID *uint                    `json:"current_company_id"`
}

func newDirectoryEntry(profile models.AlumniProfile) DirectoryEntry {
	entry := DirectoryEntry{
		ID:            profile.ID,
		Name:          profile.FullName(),
		StudentID:     profile.StudentID,
		JobTitle:      profile.JobTitle,
		City:          profile.CurrentCity,
		Country:       profile.CurrentCountry,
		IsMentor:      profile.IsMentor,
		WillingToHire: profile.WillingToHire,
		AllowContact:  profile.AllowContact,
	}
	if profile.GraduationYear != nil {
		entry.GraduationYear = profile.GraduationYear.Year
	}
	if profile.Degree != nil {
		entry.Degree = profile.Degree.Name
	}
	if profile.CurrentCompany != nil {
		entry.Company = profile.CurrentCompany.Name
	}
	return entry
}

// endregion

// SearchDirectory godoc
// @Summary      Search the alumni directory
// @Description  Paginated listing of verified alumni, filtered by name/email, student ID, graduation year, and degree. Privacy levels gate visibility.
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        q               query  string  false  "Search over name and email"
// @Param        student_id      query  string  false  "Student ID substring"
// @Param        graduation_year query  int     false  "Graduation year ID"
// @Param        degree          query  int     false  "Degree ID"
// @Param        page            query  int     false  "Page number" default(1)
// @Param        limit           query  int     false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[DirectoryEntry]
// @Failure      401  {object}  ErrorResponse
// @Router       /directory [get]
func SearchDirectory(c *gin.Context) {
	viewer := currentUser(c)
	page, limit := pageParams(c)

	query := database.DB.Model(&models.AlumniProfile{}).
		Joins("JOIN users ON users.id = alumni_profiles.user_id").
		Where("users.is_verified = ?", true).
		Where("alumni_profiles.privacy_level <> ?", models.PrivacyPrivate)

	if !viewer.IsVerified {
		query = query.Where("alumni_profiles.privacy_level = ?", models.PrivacyPublic)
	}

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.email ILIKE ?",
			like, like, like,
		)
	}
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("alumni_profiles.student_id ILIKE ?", "%"+studentID+"%")
	}
	if year := c.Query("graduation_year"); year != "" {
		query = query.Where("alumni_profiles.graduation_year_id = ?", year)
	}
	if degree := c.Query("degree"); degree != "" {
		query = query.Where("alumni_profiles.degree_id = ?", degree)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count alumni"})
		return
	}

	var profiles []models.AlumniProfile
	offset := (page - 1) * limit
	err := query.
		Preload("User").Preload("GraduationYear").Preload("Degree").Preload("CurrentCompany").
		Order("alumni_profiles.student_id").
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alumni"})
		return
	}

	entries := make([]DirectoryEntry, 0, len(profiles))
	for _, profile := range profiles {
		entries = append(entries, newDirectoryEntry(profile))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(entries, totalItems, page, limit))
}

// GetDirectoryEntry godoc
// @Summary      Get an alumni directory entry
// @Description  Retrieves a single directory entry, honoring the profile's privacy level.
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Alumni profile ID"
// @Success      200  {object}  DirectoryEntry
// @Failure      404  {object}  ErrorResponse
// @Router       /directory/{id} [get]
func GetDirectoryEntry(c *gin.Context) {
	viewer := currentUser(c)
	profileID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alumni profile ID"})
		return
	}

	var profile models.AlumniProfile
	err := database.DB.
		Preload("User").Preload("GraduationYear").Preload("Degree").Preload("CurrentCompany").
		First(&profile, profileID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alumni not found"})
		return
	}

	visible := profile.User.IsVerified && profile.PrivacyLevel != models.PrivacyPrivate
	if profile.PrivacyLevel == models.PrivacyLimited && !viewer.IsVerified {
		visible = false
	}
	if !visible && profile.UserID != viewer.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alumni not found"})
		return
	}

	c.JSON(http.StatusOK, newDirectoryEntry(profile))
}

// UpdateMyAlumniProfile godoc
// @Summary      Update own alumni profile
// @Description  Updates the caller's professional, personal, and privacy settings.
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AlumniProfileInput true "Profile fields"
// @Success      200  {object}  DirectoryEntry
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /directory/me [put]
func UpdateMyAlumniProfile(c *gin.Context) {
	profile := currentAlumni(c)

	var input AlumniProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile.JobTitle = sanitizeText(input.JobTitle)
	profile.Industry = sanitizeText(input.Industry)
	profile.LinkedinProfile = input.LinkedinProfile
	profile.CurrentCity = sanitizeText(input.CurrentCity)
	profile.CurrentCountry = sanitizeText(input.CurrentCountry)
	profile.Bio = sanitizeText(input.Bio)
	profile.Achievements = sanitizeText(input.Achievements)
	profile.Skills = sanitizeText(input.Skills)
	profile.CurrentCompanyID = input.CurrentCompanyID
	if input.EmploymentStatus != "" {
		profile.EmploymentStatus = input.EmploymentStatus
	}
	if input.PrivacyLevel != "" {
		profile.PrivacyLevel = input.PrivacyLevel
	}
	if input.AllowContact != nil {
		profile.AllowContact = *input.AllowContact
	}
	if input.IsMentor != nil {
		profile.IsMentor = *input.IsMentor
	}
	if input.IsJobSeeker != nil {
		profile.IsJobSeeker = *input.IsJobSeeker
	}
	if input.WillingToHire != nil {
		profile.WillingToHire = *input.WillingToHire
	}

	if err := database.DB.Save(profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	database.DB.Preload("User").Preload("GraduationYear").Preload("Degree").Preload("CurrentCompany").
		First(profile, profile.ID)

	c.JSON(http.StatusOK, newDirectoryEntry(*profile))
}
