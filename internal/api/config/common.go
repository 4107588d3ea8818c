package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	Mongo             MongoConfig       `mapstructure:"mongo"`
	Redis             RedisConfig       `mapstructure:"redis"`
	MinIO             MinIOConfig       `mapstructure:"minio"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
	Feed              FeedConfig        `mapstructure:"feed"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaViewConsumer KafkaViewConsumer `mapstructure:"kafka_view_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	MainBucket string `mapstructure:"main_bucket"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// FeedConfig 推荐流打分参数
// 打分系数是经验调参值，全部走配置，不要写死在代码里
type FeedConfig struct {
	InteractionWindow     int64   `mapstructure:"interaction_window"`
	TagWeightMultiplier   float64 `mapstructure:"tag_weight_multiplier"`
	ContentTypeBonus      float64 `mapstructure:"content_type_bonus"`
	ActiveHourBonus       float64 `mapstructure:"active_hour_bonus"`
	RecencyPenaltyPerHour float64 `mapstructure:"recency_penalty_per_hour"`
	DefaultPageSize       int     `mapstructure:"default_page_size"`
	MaxPageSize           int     `mapstructure:"max_page_size"`
	ViewedCacheTTLHours   int     `mapstructure:"viewed_cache_ttl_hours"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaViewConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
