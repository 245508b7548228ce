package handler

import (
	"errors"
	"net/http"

	"github.com/careroute/backend/internal/model"
	"github.com/careroute/backend/internal/repository"
	"github.com/careroute/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	service *service.AgentService
	routing *service.RoutingService
}

func NewAgentHandler(service *service.AgentService, routing *service.RoutingService) *AgentHandler {
	return &AgentHandler{
		service: service,
		routing: routing,
	}
}

func (h *AgentHandler) Create(c *gin.Context) {
	var agent model.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, agent)
}

func (h *AgentHandler) List(c *gin.Context) {
	agents, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, agents)
}

func (h *AgentHandler) Get(c *gin.Context) {
	agent, err := h.service.GetByAgentID(c.Param("agentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (h *AgentHandler) Update(c *gin.Context) {
	existing, err := h.service.GetByAgentID(c.Param("agentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}

	var agent model.Agent
	if err := c.ShouldBindJSON(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	agent.ID = existing.ID
	agent.AgentID = existing.AgentID

	if err := h.service.Save(&agent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, agent)
}

func (h *AgentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("agentId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "agent deleted"})
}

type availabilityRequest struct {
	Availability string `json:"availability" binding:"required"`
}

// SetAvailability 状态变更入口：变为 available 会触发该坐席的队列分发
func (h *AgentHandler) SetAvailability(c *gin.Context) {
	agentID := c.Param("agentId")

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), agentID, req.Availability); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "availability updated"})
}

type completeTaskRequest struct {
	SkillID string `json:"skill_id"`
}

// CompleteTask 坐席完成任务回调，释放容量并触发队列分发
func (h *AgentHandler) CompleteTask(c *gin.Context) {
	agentID := c.Param("agentId")

	var req completeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.routing.CompleteTask(c.Request.Context(), agentID, req.SkillID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task completed"})
}

func (h *AgentHandler) UpsertSkill(c *gin.Context) {
	agentID := c.Param("agentId")

	var skill model.AgentSkill
	if err := c.ShouldBindJSON(&skill); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	skill.AgentID = agentID

	if err := h.service.UpsertSkill(&skill); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, skill)
}

func (h *AgentHandler) GetSkills(c *gin.Context) {
	agentID := c.Param("agentId")

	skills, err := h.service.GetSkills(agentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, skills)
}
