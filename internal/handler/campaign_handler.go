package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ccl/internal/ledger"
	"github.com/blues/ccl/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 活动账本操作入口
type CampaignHandler struct {
	registry        *ledger.Registry
	contributeLogic *logic.ContributeRecordLogic
	refundLogic     *logic.RefundRecordLogic
	withdrawLogic   *logic.WithdrawRecordLogic
	recordLogic     *logic.CampaignRecordLogic
	eventLogic      *logic.EventLogic
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(registry *ledger.Registry, db *gorm.DB) *CampaignHandler {
	return &CampaignHandler{
		registry:        registry,
		contributeLogic: logic.NewContributeRecordLogic(db),
		refundLogic:     logic.NewRefundRecordLogic(db),
		withdrawLogic:   logic.NewWithdrawRecordLogic(db),
		recordLogic:     logic.NewCampaignRecordLogic(db),
		eventLogic:      logic.NewEventLogic(db),
	}
}

// callerAddress 读取网关注入的已认证调用者地址
func callerAddress(c *gin.Context) string {
	return c.GetHeader("X-Caller-Address")
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	caller := callerAddress(c)
	if caller == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少调用者地址")
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.registry.Create(caller, req.Title, req.Description, req.Goal, req.DurationDays)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{"campaign_id": id})
}

// Contribute 向活动出资
func (h *CampaignHandler) Contribute(c *gin.Context) {
	caller := callerAddress(c)
	if caller == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少调用者地址")
		return
	}

	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.registry.Contribute(c.Request.Context(), id, caller, req.Amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// Withdraw 发起人提取资金
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	caller := callerAddress(c)
	if caller == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少调用者地址")
		return
	}

	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.registry.Withdraw(c.Request.Context(), id, caller); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资金提取成功", nil)
}

// Refund 出资人申请退款
func (h *CampaignHandler) Refund(c *gin.Context) {
	caller := callerAddress(c)
	if caller == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少调用者地址")
		return
	}

	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	if err := h.registry.Refund(c.Request.Context(), id, caller); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", nil)
}

// GetCampaigns 获取全部活动快照
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns := h.registry.Snapshots()
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaigns": campaigns,
		"total":     len(campaigns),
	})
}

// GetCampaign 获取单个活动快照
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	details, err := h.registry.GetDetails(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"campaign": details})
}

// IsActive 活动是否仍在进行中
func (h *CampaignHandler) IsActive(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	active, err := h.registry.IsActive(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"active": active})
}

// GetContribution 获取某地址在活动中的当前出资额
func (h *CampaignHandler) GetContribution(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}
	address := c.Param("address")

	amount, err := h.registry.GetContribution(id, address)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"address": address,
		"amount":  amount,
	})
}

// GetContributorCount 获取活动出资人条目数
func (h *CampaignHandler) GetContributorCount(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	count, err := h.registry.GetContributorCount(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"count": count})
}

// GetContributeRecords 获取活动出资审计记录
func (h *CampaignHandler) GetContributeRecords(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	page, pageSize := pagination(c)
	records, total, err := h.contributeLogic.GetCampaignContributeRecords(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"records":   records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetRefundRecords 获取活动退款审计记录
func (h *CampaignHandler) GetRefundRecords(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	page, pageSize := pagination(c)
	records, total, err := h.refundLogic.GetCampaignRefundRecords(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"records":   records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetWithdrawRecord 获取活动的提取审计记录
func (h *CampaignHandler) GetWithdrawRecord(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	record, err := h.withdrawLogic.GetCampaignWithdrawRecord(id)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"record": record})
}

// GetCampaignRecords 获取活动历史快照列表
func (h *CampaignHandler) GetCampaignRecords(c *gin.Context) {
	page, pageSize := pagination(c)
	status := c.Query("status")

	records, total, err := h.recordLogic.GetCampaignRecords(status, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"records":   records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCampaignRecord 获取单个活动历史快照
func (h *CampaignHandler) GetCampaignRecord(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	record, err := h.recordLogic.GetCampaignRecord(id)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"record": record})
}

// GetEvents 获取事件审计列表
func (h *CampaignHandler) GetEvents(c *gin.Context) {
	campaignId, err := strconv.ParseInt(c.DefaultQuery("campaign_id", "-1"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}
	eventType := c.Query("type")

	page, pageSize := pagination(c)
	events, total, err := h.eventLogic.GetEvents(campaignId, eventType, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"events":    events,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id, err := campaignId(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	details, err := h.registry.GetDetails(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	stats, err := h.contributeLogic.GetContributeStats(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	stats["goal"] = details.Goal
	stats["amount_raised"] = details.AmountRaised
	stats["status"] = details.Status

	SuccessResponse(c, http.StatusOK, "", stats)
}

// campaignId 解析路径中的活动ID
func campaignId(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// pagination 解析分页参数
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
