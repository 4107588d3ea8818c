package kafka

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/pkg/util"
	"Lumina/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ViewsHandler 消费客户端埋点上报的浏览事件，驱动单条浏览记录写入
type ViewsHandler struct {
	feedService service.FeedService
}

func NewViewsHandler(feedService service.FeedService) *ViewsHandler {
	return &ViewsHandler{
		feedService: feedService,
	}
}

func (s *ViewsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("view event consumer setup")
	return nil
}

func (s *ViewsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("view event consumer cleanup")
	return nil
}

func (s *ViewsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-view consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-view process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ViewsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event dto.ViewEventDTO
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.ErrorContext(ctx, "unmarshal view event error", "err", err)
		// 坏消息直接丢弃，重试也不会变好
		return nil
	}

	if err := util.ValidateDTO(&event); err != nil {
		log.WarnContext(ctx, "invalid view event", "err", err)
		return nil
	}

	err := s.feedService.UpdateViewHistory(ctx, event.UserID, event.PostID)
	if err != nil {
		if errors.Is(err, service.ErrParamInvalid) {
			return nil
		}
		return err
	}
	return nil
}
