package handlers

// RfidPayload 是刷卡类接口统一的请求体
type RfidPayload struct {
	Rfid string `json:"rfid" binding:"required,min=1"`
}

// IDUri 是按数据库 ID 操作的接口统一的路径参数
type IDUri struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}
