package handler

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/pkg/response"
	"Lumina/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// GetFeed 个性化推荐流
func (s *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var queryDTO dto.FeedQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, err)
		return
	}

	feedPage, err := s.feedSvc.GetPersonalizedFeed(c.Request.Context(), userID, queryDTO.Page, queryDTO.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feedPage)
}

// MarkViewed 客户端主动上报的单条浏览记录
func (s *FeedHandler) MarkViewed(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postIDStr := c.Param("post_id")

	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.Error(c, err)
		return
	}

	err = s.feedSvc.UpdateViewHistory(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
