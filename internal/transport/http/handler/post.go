package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goblog/internal/app"
	"goblog/internal/transport/http/middleware"
	"goblog/internal/transport/http/render"
)

type PostHandler struct {
	postService *app.PostService
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		log.Printf("list posts failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "could not load posts")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts":    posts,
		"Username": c.GetString(middleware.ContextUsernameKey),
	})
}

func (h *PostHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", gin.H{})
}

func (h *PostHandler) Create(c *gin.Context) {
	input := app.PostInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	}

	_, err := h.postService.Create(c.Request.Context(), input, c.GetString(middleware.ContextUsernameKey))
	if err != nil {
		if errors.Is(err, app.ErrValidation) {
			c.HTML(http.StatusBadRequest, "create.html", gin.H{
				"Error": err.Error(),
				"Title": input.Title,
				"Body":  input.Body,
			})
			return
		}
		log.Printf("create post failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "could not create post")
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

func (h *PostHandler) UpdateForm(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			render.Error(c, http.StatusNotFound, "post not found")
			return
		}
		log.Printf("load post failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "could not load post")
		return
	}

	c.HTML(http.StatusOK, "update.html", gin.H{"Post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	input := app.PostInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	}

	err := h.postService.Update(c.Request.Context(), id, input, c.GetString(middleware.ContextUsernameKey))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPostNotFound):
			render.Error(c, http.StatusNotFound, "post not found")
		case errors.Is(err, app.ErrValidation):
			c.HTML(http.StatusBadRequest, "update.html", gin.H{
				"Error": err.Error(),
				"Post":  gin.H{"ID": id, "Title": input.Title, "Body": input.Body},
			})
		default:
			log.Printf("update post failed: %v", err)
			render.Error(c, http.StatusInternalServerError, "could not update post")
		}
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	err := h.postService.Delete(c.Request.Context(), id, c.GetString(middleware.ContextUsernameKey))
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			render.Error(c, http.StatusNotFound, "post not found")
			return
		}
		log.Printf("delete post failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "could not delete post")
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

func (h *PostHandler) Activity(c *gin.Context) {
	activities, err := h.postService.RecentActivity(50)
	if err != nil {
		log.Printf("list activity failed: %v", err)
		render.Error(c, http.StatusInternalServerError, "could not load activity")
		return
	}

	c.HTML(http.StatusOK, "activity.html", gin.H{
		"Activities": activities,
		"Username":   c.GetString(middleware.ContextUsernameKey),
	})
}

func postID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		render.Error(c, http.StatusNotFound, "post not found")
		return 0, false
	}
	return uint(id), true
}
