package handler

import (
	"net/http"
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// SuspendInput records why and for how long an account is suspended.
type SuspendInput struct {
	Reason    string     `json:"reason" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// StaffUserInput creates an admin or coordinator account.
type StaffUserInput struct {
	FirstName string      `json:"first_name" binding:"required" example:"Sam"`
	LastName  string      `json:"last_name" binding:"required" example:"Okafor"`
	Email     string      `json:"email" binding:"required,email" example:"sam@example.com"`
	Password  string      `json:"password" binding:"required,min=8"`
	Role      models.Role `json:"role" binding:"required,oneof=admin coordinator"`
}

// GraduationYearInput creates or updates a class bucket.
type GraduationYearInput struct {
	Year         string `json:"year" binding:"required,max=20"`
	DisplayOrder uint   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// DepartmentInput creates or updates a department.
type DepartmentInput struct {
	Name        string `json:"name" binding:"required,max=120"`
	Code        string `json:"code" binding:"required,max=10"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// DegreeInput creates or updates a degree.
type DegreeInput struct {
	Name          string `json:"name" binding:"required,max=120"`
	DegreeType    string `json:"degree_type" binding:"required,max=20"`
	DepartmentID  uint   `json:"department_id" binding:"required"`
	DurationYears int    `json:"duration_years" binding:"omitempty,min=1,max=10"`
	IsActive      *bool  `json:"is_active"`
}

// CompanyInput creates or updates a company.
type CompanyInput struct {
	Name        string `json:"name" binding:"required,max=200"`
	Website     string `json:"website" binding:"omitempty,url"`
	Industry    string `json:"industry" binding:"max=100"`
	Size        string `json:"size" binding:"omitempty,oneof=startup small medium large enterprise"`
	Location    string `json:"location" binding:"max=200"`
	Description string `json:"description"`
	FoundedYear *int   `json:"founded_year"`
	IsVerified  *bool  `json:"is_verified"`
}

// AdminUserEntry is a row in the admin user listing.
type AdminUserEntry struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsVerified  bool       `json:"is_verified"`
	IsSuspended bool       `json:"is_suspended"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// endregion

// ListUsers godoc
// @Summary      List users
// @Description  Admin user listing with role, verification and suspension filters plus a name/email search.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role      query string false "Role filter"
// @Param        verified  query string false "1 or 0"
// @Param        suspended query string false "1 or 0"
// @Param        q         query string false "Name or email search"
// @Param        page      query int    false "Page number"
// @Param        limit     query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[AdminUserEntry]
// @Router       /admin/users [get]
func ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	switch c.Query("verified") {
	case "1":
		query = query.Where("is_verified = ?", true)
	case "0":
		query = query.Where("is_verified = ?", false)
	}
	switch c.Query("suspended") {
	case "1":
		query = query.Where("is_suspended = ?", true)
	case "0":
		query = query.Where("is_suspended = ?", false)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	err := query.Order("created_at DESC").Scopes(paginate(page, limit)).Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	entries := make([]AdminUserEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, AdminUserEntry{
			ID:          u.ID,
			Email:       u.Email,
			Name:        u.FullName(),
			Role:        string(u.EffectiveRole()),
			IsVerified:  u.IsVerified,
			IsSuspended: u.IsSuspended,
			SuspendedAt: u.SuspendedAt,
			CreatedAt:   u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(entries, total, page, limit))
}

// CreateStaffUser godoc
// @Summary      Create a staff account
// @Description  Creates an admin or coordinator account with its profile. Staff accounts are verified from the start.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body StaffUserInput true "Staff account"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/users [post]
func CreateStaffUser(c *gin.Context) {
	var input StaffUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := database.DB.Where("LOWER(email) = LOWER(?)", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    sanitizeText(input.FirstName),
		LastName:     sanitizeText(input.LastName),
		Role:         input.Role,
		IsVerified:   true,
	}
	if err := createAccount(database.DB, &user, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

// VerifyUser godoc
// @Summary      Verify an account
// @Description  Marks the account verified and notifies the owner. Idempotent.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id}/verify [post]
func VerifyUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := lookupUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.IsVerified {
		if err := database.DB.Model(user).Update("is_verified", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
			return
		}
		_ = notify(user.ID, nil, models.NotificationSystem,
			"Your account has been verified")
	}

	c.JSON(http.StatusOK, gin.H{"message": "User verified"})
}

// SuspendUser godoc
// @Summary      Suspend an account
// @Description  Suspends with a reason and optional expiry; no expiry means permanent. Suspending yourself is refused.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "User ID"
// @Param        input body  SuspendInput true  "Suspension details"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id}/suspend [post]
func SuspendUser(c *gin.Context) {
	caller := currentUser(c)
	userID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if userID == caller.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot suspend your own account"})
		return
	}

	var input SuspendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ExpiresAt != nil && !input.ExpiresAt.After(timeNow()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry must be in the future"})
		return
	}

	user, err := lookupUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Suspend(sanitizeText(input.Reason), input.ExpiresAt)
	err = database.DB.Model(user).Select(
		"is_suspended", "suspension_reason", "suspended_at", "suspension_expires_at",
	).Updates(map[string]interface{}{
		"is_suspended":          user.IsSuspended,
		"suspension_reason":     user.SuspensionReason,
		"suspended_at":          user.SuspendedAt,
		"suspension_expires_at": user.SuspensionExpiresAt,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suspend user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User suspended"})
}

// UnsuspendUser godoc
// @Summary      Lift an account suspension
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/users/{id}/unsuspend [post]
func UnsuspendUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := lookupUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Unsuspend()
	err = database.DB.Model(user).Select(
		"is_suspended", "suspension_reason", "suspended_at", "suspension_expires_at",
	).Updates(map[string]interface{}{
		"is_suspended":          false,
		"suspension_reason":     "",
		"suspended_at":          nil,
		"suspension_expires_at": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsuspend user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unsuspended"})
}

// region --- Catalog CRUD ---

// ListGraduationYears godoc
// @Summary      List graduation years
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  models.GraduationYear
// @Router       /catalog/graduation-years [get]
func ListGraduationYears(c *gin.Context) {
	var years []models.GraduationYear
	err := database.DB.Where("is_active = ?", true).
		Order("display_order ASC, year ASC").
		Find(&years).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve graduation years"})
		return
	}
	c.JSON(http.StatusOK, years)
}

// CreateGraduationYear godoc
// @Summary      Create a graduation year
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GraduationYearInput true "Bucket details"
// @Success      201  {object}  models.GraduationYear
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/catalog/graduation-years [post]
func CreateGraduationYear(c *gin.Context) {
	var input GraduationYearInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	year := models.GraduationYear{
		Year:         input.Year,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if input.IsActive != nil {
		year.IsActive = *input.IsActive
	}

	if err := database.DB.Create(&year).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Graduation year already exists"})
		return
	}
	c.JSON(http.StatusCreated, year)
}

// UpdateGraduationYear godoc
// @Summary      Update a graduation year
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "Graduation year ID"
// @Param        input body  GraduationYearInput true  "Bucket details"
// @Success      200  {object}  models.GraduationYear
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/catalog/graduation-years/{id} [put]
func UpdateGraduationYear(c *gin.Context) {
	yearID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid graduation year ID"})
		return
	}

	var input GraduationYearInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var year models.GraduationYear
	if err := database.DB.First(&year, yearID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Graduation year not found"})
		return
	}

	year.Year = input.Year
	year.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		year.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&year).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update graduation year"})
		return
	}
	c.JSON(http.StatusOK, year)
}

// ListDepartments godoc
// @Summary      List departments
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  models.Department
// @Router       /catalog/departments [get]
func ListDepartments(c *gin.Context) {
	var departments []models.Department
	err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&departments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve departments"})
		return
	}
	c.JSON(http.StatusOK, departments)
}

// CreateDepartment godoc
// @Summary      Create a department
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DepartmentInput true "Department details"
// @Success      201  {object}  models.Department
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/catalog/departments [post]
func CreateDepartment(c *gin.Context) {
	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department := models.Department{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		department.IsActive = *input.IsActive
	}

	if err := database.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Department already exists"})
		return
	}
	c.JSON(http.StatusCreated, department)
}

// UpdateDepartment godoc
// @Summary      Update a department
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "Department ID"
// @Param        input body  DepartmentInput true  "Department details"
// @Success      200  {object}  models.Department
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/catalog/departments/{id} [put]
func UpdateDepartment(c *gin.Context) {
	departmentID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department
	if err := database.DB.First(&department, departmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	department.Name = input.Name
	department.Code = input.Code
	department.Description = input.Description
	if input.IsActive != nil {
		department.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}
	c.JSON(http.StatusOK, department)
}

// ListDegrees godoc
// @Summary      List degrees
// @Tags         catalog
// @Produce      json
// @Param        department query int false "Department ID"
// @Success      200  {array}  models.Degree
// @Router       /catalog/degrees [get]
func ListDegrees(c *gin.Context) {
	query := database.DB.Preload("Department").Where("is_active = ?", true)
	if departmentID := c.Query("department"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var degrees []models.Degree
	if err := query.Order("name ASC").Find(&degrees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve degrees"})
		return
	}
	c.JSON(http.StatusOK, degrees)
}

// CreateDegree godoc
// @Summary      Create a degree
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DegreeInput true "Degree details"
// @Success      201  {object}  models.Degree
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/catalog/degrees [post]
func CreateDegree(c *gin.Context) {
	var input DegreeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var department models.Department
	if err := database.DB.First(&department, input.DepartmentID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
		return
	}

	degree := models.Degree{
		Name:          input.Name,
		DegreeType:    input.DegreeType,
		DepartmentID:  input.DepartmentID,
		DurationYears: 4,
		IsActive:      true,
	}
	if input.DurationYears > 0 {
		degree.DurationYears = input.DurationYears
	}
	if input.IsActive != nil {
		degree.IsActive = *input.IsActive
	}

	if err := database.DB.Create(&degree).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create degree"})
		return
	}
	c.JSON(http.StatusCreated, degree)
}

// UpdateDegree godoc
// @Summary      Update a degree
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int         true  "Degree ID"
// @Param        input body  DegreeInput true  "Degree details"
// @Success      200  {object}  models.Degree
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/catalog/degrees/{id} [put]
func UpdateDegree(c *gin.Context) {
	degreeID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid degree ID"})
		return
	}

	var input DegreeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var degree models.Degree
	if err := database.DB.First(&degree, degreeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Degree not found"})
		return
	}

	degree.Name = input.Name
	degree.DegreeType = input.DegreeType
	degree.DepartmentID = input.DepartmentID
	if input.DurationYears > 0 {
		degree.DurationYears = input.DurationYears
	}
	if input.IsActive != nil {
		degree.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&degree).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update degree"})
		return
	}
	c.JSON(http.StatusOK, degree)
}

// ListCompanies godoc
// @Summary      List companies
// @Tags         catalog
// @Produce      json
// @Param        q query string false "Name search"
// @Success      200  {array}  models.Company
// @Router       /catalog/companies [get]
func ListCompanies(c *gin.Context) {
	query := database.DB.Model(&models.Company{})
	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	}

	var companies []models.Company
	if err := query.Order("name ASC").Limit(100).Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve companies"})
		return
	}
	c.JSON(http.StatusOK, companies)
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Any authenticated user can propose a company; admins verify them.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CompanyInput true "Company details"
// @Success      201  {object}  models.Company
// @Failure      409  {object}  ErrorResponse
// @Router       /catalog/companies [post]
func CreateCompany(c *gin.Context) {
	caller := currentUser(c)

	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company := models.Company{
		Name:        sanitizeText(input.Name),
		Website:     input.Website,
		Industry:    sanitizeText(input.Industry),
		Size:        models.CompanySize(input.Size),
		Location:    sanitizeText(input.Location),
		Description: sanitizeText(input.Description),
		FoundedYear: input.FoundedYear,
		CreatedByID: &caller.ID,
	}

	if err := database.DB.Create(&company).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Company already exists"})
		return
	}
	c.JSON(http.StatusCreated, company)
}

// UpdateCompany godoc
// @Summary      Update a company
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Company ID"
// @Param        input body  CompanyInput true  "Company details"
// @Success      200  {object}  models.Company
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/catalog/companies/{id} [put]
func UpdateCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
		return
	}

	var input CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var company models.Company
	if err := database.DB.First(&company, companyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	company.Name = sanitizeText(input.Name)
	company.Website = input.Website
	company.Industry = sanitizeText(input.Industry)
	company.Size = models.CompanySize(input.Size)
	company.Location = sanitizeText(input.Location)
	company.Description = sanitizeText(input.Description)
	company.FoundedYear = input.FoundedYear
	if input.IsVerified != nil {
		company.IsVerified = *input.IsVerified
	}

	if err := database.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}
	c.JSON(http.StatusOK, company)
}

// endregion
