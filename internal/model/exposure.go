package model

// ExposureBatch 曝光补偿队列的载荷
// 批量曝光写失败时整批入列，由定时任务重放
type ExposureBatch struct {
	UserID  uint64   `json:"user_id"`
	PostIDs []uint64 `json:"post_ids"`
}
