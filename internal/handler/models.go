package handler

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Goal         int64  `json:"goal" binding:"required"`
	DurationDays int64  `json:"duration_days" binding:"required"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}
