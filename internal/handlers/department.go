package handlers

import (
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/dto"
	apierrors "github.com/artwork-tools/artwork-admin/internal/errors"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, constants.DepartmentsPerPage)
	departments, total, err := h.departmentService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Departments/Index", gin.H{
		"departments": dto.ToDepartmentDTOs(departments, h.departmentService.LogoURL),
		"pagination":  utils.NewPaginationResponse(params, total),
		"can_create":  h.departmentService.CanCreate(actor),
	})
}

func (h *DepartmentHandler) CreateForm(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if !h.departmentService.CanCreate(actor) {
		respondError(c, services.ErrForbidden)
		return
	}

	users, err := h.departmentService.AssignableUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Departments/Create", gin.H{
		"users": dto.ToUserSummaryDTOs(users),
	})
}

// CreateDepartment accepts JSON or multipart with an optional logo
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	input, closeFn, ok := h.input(c)
	if !ok {
		return
	}
	defer closeFn()

	department, err := h.departmentService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/departments/%d", department.ID), "Department created.")
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	h.show(c, "Departments/Show", false)
}

func (h *DepartmentHandler) EditForm(c *gin.Context) {
	h.show(c, "Departments/Edit", true)
}

func (h *DepartmentHandler) show(c *gin.Context, component string, withUsers bool) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "department")
	if !ok {
		return
	}

	department, err := h.departmentService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	props := gin.H{"department": dto.ToDepartmentDTO(*department, h.departmentService.LogoURL)}
	if withUsers {
		users, err := h.departmentService.AssignableUsers(c.Request.Context(), actor)
		if err != nil {
			respondError(c, err)
			return
		}
		props["users"] = dto.ToUserSummaryDTOs(users)
	}
	render(c, component, props)
}

// UpdateDepartment changes a department. A new logo replaces the old one.
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "department")
	if !ok {
		return
	}

	input, closeFn, ok := h.input(c)
	if !ok {
		return
	}
	defer closeFn()

	department, err := h.departmentService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/departments/%d", department.ID), "Department saved.")
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "department")
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/departments", "Department deleted.")
}

func (h *DepartmentHandler) input(c *gin.Context) (services.DepartmentInput, func(), bool) {
	var input services.DepartmentInput
	noop := func() {}

	if !isMultipart(c) {
		return input, noop, bind(c, &input)
	}

	input.Name = formString(c, "name")
	input.SvgName = formString(c, "svg_name")
	input.UserIDs = formIDs(c, "user_ids")

	logo, closeFn, err := formUpload(c, "logo")
	if err != nil {
		apierrors.BadRequest(c, "Invalid logo upload")
		return input, noop, false
	}
	input.Logo = logo
	if closeFn == nil {
		closeFn = noop
	}
	return input, closeFn, true
}
