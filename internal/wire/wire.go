package wire

import (
	"Lumina/internal/api"
	"Lumina/internal/api/config"
	"Lumina/internal/api/handler"
	"Lumina/internal/job"
	"Lumina/internal/pkg/cron"
	"Lumina/internal/pkg/kafka"
	"Lumina/internal/repository"
	"Lumina/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)

	feedService := service.NewFeedService(userRepo, postRepo, interactionRepo, cfg.Feed)

	handlers := &api.HandlersGroup{
		FeedHandler: handler.NewFeedHandler(feedService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, feedService)
	if err != nil {
		return nil, err
	}

	exposureRetryJob := job.NewExposureRetryJob(interactionRepo)
	cronMgr := cron.NewCronManager(exposureRetryJob)

	return &ApplicationContainer{
		Router:       router,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
