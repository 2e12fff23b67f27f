package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

type NewsController struct {
	newsService services.NewsService
}

func NewNewsController(newsService services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

func (nc *NewsController) ListNews(ctx *gin.Context) {
	items, err := nc.newsService.List(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (nc *NewsController) GetNews(ctx *gin.Context) {
	item, err := nc.newsService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (nc *NewsController) CreateNews(ctx *gin.Context) {
	var req models.NewsRequest
	if !bindJSON(ctx, &req) {
		return
	}
	item, err := nc.newsService.Create(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

func (nc *NewsController) UpdateNews(ctx *gin.Context) {
	var req models.NewsRequest
	if !bindJSON(ctx, &req) {
		return
	}
	item, err := nc.newsService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (nc *NewsController) DeleteNews(ctx *gin.Context) {
	if err := nc.newsService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
}
