package handlers

import (
	"fmt"
	"net/http"

	"github.com/artwork-tools/artwork-admin/internal/dto"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/gin-gonic/gin"
)

type ChecklistHandler struct {
	checklistService *services.ChecklistService
}

func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService}
}

func (h *ChecklistHandler) CreateForm(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if !h.checklistService.CanCreate(actor) {
		respondError(c, services.ErrForbidden)
		return
	}

	users, err := h.checklistService.AssignableUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Checklists/Create", gin.H{
		"users":      dto.ToUserSummaryDTOs(users),
		"project_id": c.Query("project_id"),
	})
}

func (h *ChecklistHandler) CreateChecklist(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input services.ChecklistInput
	if !bind(c, &input) {
		return
	}

	checklist, err := h.checklistService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/checklists/%d", checklist.ID), "Checklist created.")
}

func (h *ChecklistHandler) GetChecklist(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "checklist")
	if !ok {
		return
	}

	checklist, err := h.checklistService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Checklists/Show", gin.H{
		"checklist": dto.ToChecklistDTO(*checklist),
	})
}

func (h *ChecklistHandler) EditForm(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "checklist")
	if !ok {
		return
	}

	checklist, err := h.checklistService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	users, err := h.checklistService.AssignableUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Checklists/Edit", gin.H{
		"checklist": dto.ToChecklistDTO(*checklist),
		"users":     dto.ToUserSummaryDTOs(users),
	})
}

// UpdateChecklist renames a checklist, appends tasks and replaces assigned users
func (h *ChecklistHandler) UpdateChecklist(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "checklist")
	if !ok {
		return
	}

	var input services.ChecklistInput
	if !bind(c, &input) {
		return
	}

	checklist, err := h.checklistService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/checklists/%d", checklist.ID), "Checklist saved.")
}

func (h *ChecklistHandler) DeleteChecklist(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "checklist")
	if !ok {
		return
	}

	if err := h.checklistService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/dashboard", "Checklist deleted.")
}

// SuggestTasks uses AI to propose tasks from free text. Nothing is stored.
func (h *ChecklistHandler) SuggestTasks(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input services.SuggestTasksInput
	if !bind(c, &input) {
		return
	}

	tasks, err := h.checklistService.SuggestTasks(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// UpdateTask changes a task and answers with its new state
func (h *ChecklistHandler) UpdateTask(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "task")
	if !ok {
		return
	}

	var input services.UpdateTaskInput
	if !bind(c, &input) {
		return
	}

	task, err := h.checklistService.UpdateTask(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/checklists/%d", task.ChecklistID), "Task saved.")
}

func (h *ChecklistHandler) DeleteTask(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "task")
	if !ok {
		return
	}

	task, err := h.checklistService.DeleteTask(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/checklists/%d", task.ChecklistID), "Task deleted.")
}
