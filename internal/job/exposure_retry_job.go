package job

import (
	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/logger"
	"Lumina/internal/pkg/redis"
	"Lumina/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// maxBatchesPerRun 单次运行最多重放的批次数，避免长队列拖死一轮调度
const maxBatchesPerRun = 256

// ExposureRetryJob 重放曝光写失败的补偿队列
type ExposureRetryJob struct {
	interactionRepo repository.InteractionRepo
}

func NewExposureRetryJob(interactionRepo repository.InteractionRepo) *ExposureRetryJob {
	return &ExposureRetryJob{
		interactionRepo: interactionRepo,
	}
}

func (s *ExposureRetryJob) Run() {
	traceID := "job-exposure-retry-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	var replayed, failed int

	for i := 0; i < maxBatchesPerRun; i++ {
		payload, err := redis.LPop(ctx, consts.FeedExposureRetryKey)
		if err != nil {
			log.ErrorContext(ctx, "pop exposure retry queue error", "err", err)
			break
		}
		if payload == "" {
			break
		}

		var batch model.ExposureBatch
		if err = json.Unmarshal([]byte(payload), &batch); err != nil {
			log.ErrorContext(ctx, "decode exposure batch error", "err", err)
			continue
		}

		err = s.interactionRepo.BulkUpsertViews(ctx, batch.UserID, batch.PostIDs, time.Now())
		if err != nil {
			// 写还是失败，放回队尾等下一轮
			log.WarnContext(ctx, "replay exposure batch failed", "uid", batch.UserID, "err", err)
			_ = redis.RPush(ctx, consts.FeedExposureRetryKey, payload)
			failed++
			break
		}
		replayed++
	}

	if replayed > 0 || failed > 0 {
		log.InfoContext(ctx, "ExposureRetryJob finished", "replayed", replayed, "failed", failed)
	}
}
