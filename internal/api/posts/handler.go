package posts

import (
	"net/http"
	"strconv"

	"clubsite-api/database"
	"clubsite-api/internal/api/httpx"
	"clubsite-api/internal/domain/posts"

	"github.com/gin-gonic/gin"
)

type CreatePostRequest struct {
	Title       string  `json:"title" binding:"required"`
	Content     *string `json:"content"`
	Published   bool    `json:"published"`
	Hits        int     `json:"hits"`
	OldPost     bool    `json:"old_post"`
	AuthorID    uint    `json:"author_id" binding:"required"`
	CategoryIDs []uint  `json:"category_ids"`
	TagIDs      []uint  `json:"tag_ids"`
	ThumbnailID *uint   `json:"thumbnail_id"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Published   *bool   `json:"published"`
	Hits        *int    `json:"hits"`
	OldPost     *bool   `json:"old_post"`
	CategoryIDs *[]uint `json:"category_ids"`
	TagIDs      *[]uint `json:"tag_ids"`
	ThumbnailID *uint   `json:"thumbnail_id"`
	// ClearThumbnail detaches the thumbnail; thumbnail_id wins when both
	// are sent.
	ClearThumbnail bool `json:"clear_thumbnail"`
}

// GET /posts?published=&category=&tag=&page=&limit=
func ListPosts(c *gin.Context) {
	params := posts.ListParams{
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
	}
	if v := c.Query("published"); v != "" {
		published := v == "true" || v == "1"
		params.Published = &published
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	out, err := posts.List(database.DB, params)
	if err != nil {
		httpx.Fail(c, err, "Failed to load posts")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /posts/:slug
func GetPost(c *gin.Context) {
	p, err := posts.GetBySlug(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load post")
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /posts
func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := posts.Create(database.DB, posts.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		Published:   req.Published,
		Hits:        req.Hits,
		OldPost:     req.OldPost,
		AuthorID:    req.AuthorID,
		CategoryIDs: req.CategoryIDs,
		TagIDs:      req.TagIDs,
		ThumbnailID: req.ThumbnailID,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /posts/:slug
func UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := posts.UpdateInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		Hits:      req.Hits,
		OldPost:   req.OldPost,
	}
	if req.CategoryIDs != nil {
		in.CategoryIDs = *req.CategoryIDs
		in.CategorySet = true
	}
	if req.TagIDs != nil {
		in.TagIDs = *req.TagIDs
		in.TagSet = true
	}
	if req.ThumbnailID != nil {
		in.ThumbnailID = req.ThumbnailID
		in.ThumbnailSet = true
	} else if req.ClearThumbnail {
		in.ThumbnailSet = true
	}

	p, err := posts.Update(database.DB, c.Param("slug"), in)
	if err != nil {
		httpx.Fail(c, err, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /posts/:slug
func DeletePost(c *gin.Context) {
	p, err := posts.Remove(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to delete post")
		return
	}
	c.JSON(http.StatusOK, p)
}
