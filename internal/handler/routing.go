package handler

import (
	"net/http"

	"github.com/careroute/backend/internal/pkg/routing"
	"github.com/careroute/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type RoutingHandler struct {
	service *service.RoutingService
}

func NewRoutingHandler(service *service.RoutingService) *RoutingHandler {
	return &RoutingHandler{
		service: service,
	}
}

type routeRequest struct {
	TaskID       string                         `json:"task_id" binding:"required"`
	Requirements *routing.TaskSkillRequirements `json:"requirements"`
	Context      routing.RoutingContext         `json:"context"`
}

func (h *RoutingHandler) Route(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.service.Route(c.Request.Context(), req.TaskID, req.Requirements, req.Context)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, decision)
}

type checkMatchRequest struct {
	AgentID      string                         `json:"agent_id" binding:"required"`
	Requirements *routing.TaskSkillRequirements `json:"requirements"`
}

func (h *RoutingHandler) CheckMatch(c *gin.Context) {
	var req checkMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CheckAgentMatch(req.AgentID, req.Requirements)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RoutingHandler) ProcessQueue(c *gin.Context) {
	agentID := c.Param("agentId")
	if agentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent id"})
		return
	}

	decisions, err := h.service.ProcessQueueForAgent(agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

func (h *RoutingHandler) Rebalance(c *gin.Context) {
	decisions, err := h.service.RebalanceQueues()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

type hierarchyRequest struct {
	SkillID         string   `json:"skill_id" binding:"required"`
	ImpliedSkillIDs []string `json:"implied_skill_ids"`
}

func (h *RoutingHandler) RegisterHierarchy(c *gin.Context) {
	var req hierarchyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.service.RegisterSkillHierarchy(req.SkillID, req.ImpliedSkillIDs)
	c.JSON(http.StatusOK, gin.H{"message": "hierarchy registered"})
}

func (h *RoutingHandler) ResetRoundRobin(c *gin.Context) {
	h.service.ResetRoundRobinState()
	c.JSON(http.StatusOK, gin.H{"message": "round robin state reset"})
}

func (h *RoutingHandler) GetQueues(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"queues": h.service.GetQueueIds()})
}

func (h *RoutingHandler) GetQueuedTasks(c *gin.Context) {
	queueID := c.Param("queueId")
	c.JSON(http.StatusOK, gin.H{"tasks": h.service.GetQueuedTasks(queueID)})
}

func (h *RoutingHandler) RemoveQueuedTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if err := h.service.RemoveQueuedTask(taskID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task removed from queue"})
}
