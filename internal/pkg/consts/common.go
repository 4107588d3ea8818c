package consts

// 互动类型，与文档库 interactions 集合中的 type 字段对应
const (
	InteractionView    = "view"
	InteractionLike    = "like"
	InteractionComment = "comment"
)

// 内容类型
const (
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
	ContentTypeText  = "text"
)
