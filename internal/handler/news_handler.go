package handler

import (
	"fmt"
	"net/http"
	"time"

	"cosaportal/backend/internal/auth"
	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// NewsInput is the payload for creating or updating an article.
type NewsInput struct {
	Title           string `json:"title" binding:"required,max=200"`
	Content         string `json:"content" binding:"required"`
	Category        string `json:"category" binding:"omitempty,oneof=general alumni_spotlight achievements events careers institution"`
	IsFeatured      bool   `json:"is_featured"`
	MetaDescription string `json:"meta_description" binding:"max=160"`
}

// NewsResponse is an article with its markdown rendered to sanitized HTML.
type NewsResponse struct {
	ID              uint         `json:"id"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Category        string       `json:"category"`
	ContentHTML     string       `json:"content_html"`
	MetaDescription string       `json:"meta_description,omitempty"`
	IsPublished     bool         `json:"is_published"`
	IsFeatured      bool         `json:"is_featured"`
	PublishDate     *time.Time   `json:"publish_date,omitempty"`
	Author          *UserSummary `json:"author,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// endregion

func newNewsResponse(article *models.News) (*NewsResponse, error) {
	html, err := renderMarkdown(article.Content)
	if err != nil {
		return nil, err
	}
	return &NewsResponse{
		ID:              article.ID,
		Title:           article.Title,
		Slug:            article.Slug,
		Category:        string(article.Category),
		ContentHTML:     html,
		MetaDescription: article.MetaDescription,
		IsPublished:     article.IsPublished,
		IsFeatured:      article.IsFeatured,
		PublishDate:     article.PublishDate,
		Author:          newUserSummary(&article.Author.User),
		CreatedAt:       article.CreatedAt,
	}, nil
}

// uniqueSlug appends a numeric suffix until the slug is free. The unique
// constraint on News.Slug remains the final guard.
func uniqueSlug(db *gorm.DB, base string, excludeID uint) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		query := db.Model(&models.News{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateNews godoc
// @Summary      Create a news article
// @Description  Articles start unpublished. The slug derives from the title with a numeric suffix on collision.
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body NewsInput true "Article details"
// @Success      201  {object}  models.News
// @Failure      400  {object}  ErrorResponse
// @Router       /news [post]
func CreateNews(c *gin.Context) {
	coordinator := currentCoordinator(c)

	var input NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := sanitizeText(input.Title)
	slug, err := uniqueSlug(database.DB, slugify(title), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	article := models.News{
		Title:           title,
		Content:         input.Content,
		Category:        models.NewsGeneral,
		AuthorID:        coordinator.ID,
		IsFeatured:      input.IsFeatured,
		Slug:            slug,
		MetaDescription: sanitizeText(input.MetaDescription),
	}
	if input.Category != "" {
		article.Category = models.NewsCategory(input.Category)
	}

	if err := database.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, article)
}

// ListNews godoc
// @Summary      List published articles
// @Description  Public listing; featured articles sort first. Category filter optional.
// @Tags         news
// @Produce      json
// @Param        category query string false "Category"
// @Param        page     query int    false "Page number"
// @Param        limit    query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[NewsResponse]
// @Router       /news [get]
func ListNews(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.News{}).
		Preload("Author.User").
		Where("is_published = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count articles"})
		return
	}

	var articles []models.News
	err := query.Order("is_featured DESC, publish_date DESC").
		Scopes(paginate(page, limit)).
		Find(&articles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve articles"})
		return
	}

	results := make([]NewsResponse, 0, len(articles))
	for i := range articles {
		response, err := newNewsResponse(&articles[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render article"})
			return
		}
		results = append(results, *response)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(results, total, page, limit))
}

// GetNews godoc
// @Summary      Get an article by slug
// @Description  Unpublished articles are only visible to coordinators.
// @Tags         news
// @Produce      json
// @Param        slug path string true "Article slug"
// @Success      200  {object}  NewsResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /news/{slug} [get]
func GetNews(c *gin.Context) {
	slug := c.Param("slug")

	var article models.News
	err := database.DB.Preload("Author.User").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if !article.IsPublished {
		visible := false
		if value, ok := c.Get(auth.ContextUserIDKey); ok {
			var viewer models.User
			if err := database.DB.First(&viewer, value.(uint)).Error; err == nil &&
				viewer.EffectiveRole() != models.RoleAlumni {
				visible = true
			}
		}
		if !visible {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
	}

	response, err := newNewsResponse(&article)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render article"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// newsOwnedBy fetches an article and verifies authorship.
func newsOwnedBy(c *gin.Context, coordinatorID uint) (*models.News, bool) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return nil, false
	}

	var article models.News
	if err := database.DB.First(&article, articleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return nil, false
	}
	if article.AuthorID != coordinatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can manage this article"})
		return nil, false
	}
	return &article, true
}

// UpdateNews godoc
// @Summary      Update an article
// @Description  Retitling regenerates the slug.
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int       true  "Article ID"
// @Param        input body  NewsInput true  "Article details"
// @Success      200  {object}  models.News
// @Failure      403  {object}  ErrorResponse
// @Router       /news/{id} [put]
func UpdateNews(c *gin.Context) {
	coordinator := currentCoordinator(c)
	article, ok := newsOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	var input NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := sanitizeText(input.Title)
	if title != article.Title {
		slug, err := uniqueSlug(database.DB, slugify(title), article.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
			return
		}
		article.Slug = slug
	}

	article.Title = title
	article.Content = input.Content
	if input.Category != "" {
		article.Category = models.NewsCategory(input.Category)
	}
	article.IsFeatured = input.IsFeatured
	article.MetaDescription = sanitizeText(input.MetaDescription)

	if err := database.DB.Save(article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// PublishNews godoc
// @Summary      Toggle an article's published state
// @Description  Publishing stamps the publish date on first publish.
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  models.News
// @Failure      403  {object}  ErrorResponse
// @Router       /news/{id}/publish [post]
func PublishNews(c *gin.Context) {
	coordinator := currentCoordinator(c)
	article, ok := newsOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	updates := map[string]interface{}{"is_published": !article.IsPublished}
	if !article.IsPublished && article.PublishDate == nil {
		now := timeNow()
		updates["publish_date"] = &now
	}

	if err := database.DB.Model(article).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// DeleteNews godoc
// @Summary      Delete an article
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Router       /news/{id} [delete]
func DeleteNews(c *gin.Context) {
	coordinator := currentCoordinator(c)
	article, ok := newsOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	if err := database.DB.Delete(article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

// ListAllNews godoc
// @Summary      List all articles including drafts
// @Description  Coordinator-only listing.
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number"
// @Param        limit query int false "Items per page"
// @Success      200  {object}  PaginatedResponse[models.News]
// @Router       /news/all [get]
func ListAllNews(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.News{}).Preload("Author.User")

	response, err := Paginate[models.News](query.Order("created_at DESC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve articles"})
		return
	}

	c.JSON(http.StatusOK, response)
}
