package consts

const (
	FeedViewedKey        = "feed:viewed:"
	FeedExposureRetryKey = "feed:exposure:retry"
)
