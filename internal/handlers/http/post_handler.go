package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/handlers/dto"
	"github.com/rafabene/avantpro-blog/internal/handlers/middleware"
	"github.com/rafabene/avantpro-blog/internal/services"
)

// PostHandler lida com requisições HTTP relacionadas a posts
type PostHandler struct {
	postService *services.PostService
	logger      ports.Logger
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, logger ports.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// ListPosts lista posts paginados
//
//	@Summary	List posts
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int	false	"Page (starts at 1)"
//	@Param		per_page	query		int	false	"Page size (max 100)"
//	@Success	200			{object}	dto.Response{data=[]dto.PostResponse,meta=dto.Pagination}
//	@Failure	401			{object}	dto.Response
//	@Failure	422			{object}	dto.Response
//	@Router		/v1/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var query dto.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	page, err := h.postService.ListPosts(c.Request.Context(), query.Page, query.PerPage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]dto.PostResponse, 0, len(page.Items))
	for _, post := range page.Items {
		items = append(items, h.toResponse(post))
	}

	response := dto.Success(c, "post.listed", items)
	response.Meta = &dto.Pagination{
		CurrentPage: page.Page,
		PerPage:     page.PageSize,
		Total:       page.Total,
		LastPage:    page.LastPage,
	}
	c.JSON(http.StatusOK, response)
}

// CreatePost cria um post do usuário autenticado
//
//	@Summary	Create a post
//	@Tags		posts
//	@Accept		json,mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		title			formData	string	true	"Title"
//	@Param		body			formData	string	true	"Body"
//	@Param		slug			formData	string	false	"Slug"
//	@Param		is_published	formData	bool	false	"Published"
//	@Param		cover_image		formData	file	false	"Cover image (max 2MB)"
//	@Success	201				{object}	dto.Response{data=dto.PostResponse}
//	@Failure	401				{object}	dto.Response
//	@Failure	422				{object}	dto.Response
//	@Failure	500				{object}	dto.Response
//	@Router		/v1/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	cover, closeCover, errs, err := openCoverImage(c, req.CoverImage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer closeCover()
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationFailure(c, errs))
		return
	}

	input := services.CreatePostInput{
		Title:      req.Title,
		Body:       req.Body,
		Slug:       req.Slug,
		CoverImage: cover,
	}
	if req.IsPublished != nil {
		input.IsPublished = *req.IsPublished
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(c, "post.created", h.toResponse(post)))
}

// GetPost busca um post por ID
//
//	@Summary	Get a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.Response{data=dto.PostResponse}
//	@Failure	401	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Router		/v1/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(c, "post.shown", h.toResponse(post)))
}

// UpdatePost atualiza parcialmente um post
//
//	@Summary	Update a post
//	@Tags		posts
//	@Accept		json,mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id				path		string	true	"Post ID"
//	@Param		title			formData	string	false	"Title"
//	@Param		body			formData	string	false	"Body"
//	@Param		slug			formData	string	false	"Slug"
//	@Param		is_published	formData	bool	false	"Published"
//	@Param		cover_image		formData	file	false	"Cover image (max 2MB)"
//	@Success	200				{object}	dto.Response{data=dto.PostResponse}
//	@Failure	401				{object}	dto.Response
//	@Failure	404				{object}	dto.Response
//	@Failure	422				{object}	dto.Response
//	@Router		/v1/posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req dto.UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	cover, closeCover, errs, err := openCoverImage(c, req.CoverImage)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer closeCover()
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationFailure(c, errs))
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), c.Param("id"), services.UpdatePostInput{
		Title:       req.Title,
		Body:        req.Body,
		Slug:        req.Slug,
		CoverImage:  cover,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(c, "post.updated", h.toResponse(post)))
}

// DeletePost faz soft delete de um post
//
//	@Summary	Soft delete a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.Response
//	@Failure	401	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Router		/v1/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(c, "post.deleted", nil))
}

// RestorePost restaura um post deletado
//
//	@Summary	Restore a soft-deleted post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	dto.Response{data=dto.PostResponse}
//	@Failure	401	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Failure	422	{object}	dto.Response
//	@Router		/v1/posts/{id}/restore [patch]
func (h *PostHandler) RestorePost(c *gin.Context) {
	post, err := h.postService.RestorePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(c, "post.restored", h.toResponse(post)))
}

func (h *PostHandler) toResponse(post *entities.Post) dto.PostResponse {
	return dto.ToPostResponse(post, h.postService.CoverURL(post))
}
