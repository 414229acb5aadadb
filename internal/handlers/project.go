package handlers

import (
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/dto"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects renders the projects visible to the current user
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, constants.ProjectsPerPage)
	projects, total, err := h.projectService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Projects/Index", gin.H{
		"projects":   dto.ToProjectDTOs(projects),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input services.ProjectInput
	if !bind(c, &input) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/projects/%d", project.ID), "Project created.")
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "project")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Projects/Show", gin.H{
		"project": dto.ToProjectDTO(*project),
	})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "project")
	if !ok {
		return
	}

	var input services.ProjectInput
	if !bind(c, &input) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/projects/%d", project.ID), "Project saved.")
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/projects", "Project deleted.")
}
