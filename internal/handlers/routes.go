package handlers

import (
	"net/http"

	"github.com/artwork-tools/artwork-admin/internal/middleware"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler of the application.
type Handlers struct {
	Auth        *AuthHandler
	Invitations *InvitationHandler
	Users       *UserHandler
	Departments *DepartmentHandler
	Projects    *ProjectHandler
	Checklists  *ChecklistHandler
	Areas       *AreaHandler
}

// RouteConfig holds the middleware dependencies of RegisterRoutes.
type RouteConfig struct {
	Users     repository.UserRepository
	RateLimit middleware.RateLimitConfig
	// StorageDir is served under /storage when non-empty.
	StorageDir string
}

// RegisterRoutes mounts all routes on r.
func RegisterRoutes(r *gin.Engine, h Handlers, cfg RouteConfig) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Artwork admin is running",
		})
	})

	if cfg.StorageDir != "" {
		r.Static("/storage", cfg.StorageDir)
	}

	// Public routes, each limited with its own budget per client IP
	r.GET("/setup", h.Auth.SetupForm)
	r.POST("/setup", middleware.RateLimit(cfg.RateLimit), h.Auth.Setup)
	r.POST("/login", middleware.RateLimit(cfg.RateLimit), h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/users/invitations/accept", h.Invitations.AcceptForm)
	r.POST("/users/invitations/accept", middleware.RateLimit(cfg.RateLimit), h.Invitations.Accept)

	// Authenticated routes
	auth := r.Group("")
	auth.Use(middleware.RequireAuth(cfg.Users))
	{
		auth.GET("/me", h.Auth.GetCurrentUser)
		auth.GET("/dashboard", h.Auth.Dashboard)

		invitations := auth.Group("/users/invitations")
		{
			invitations.GET("", h.Invitations.ListInvitations)
			invitations.GET("/invite", h.Invitations.InviteForm)
			invitations.POST("", h.Invitations.Invite)
			invitations.GET("/:invitation/edit", h.Invitations.EditForm)
			invitations.PATCH("/:invitation", h.Invitations.UpdateInvitation)
			invitations.DELETE("/:invitation", h.Invitations.DeleteInvitation)
		}

		users := auth.Group("/users")
		{
			users.GET("", h.Users.ListUsers)
			users.GET("/:user", h.Users.GetUser)
			users.PATCH("/:user", h.Users.UpdateUser)
			users.DELETE("/:user", h.Users.DeleteUser)
		}

		departments := auth.Group("/departments")
		{
			departments.GET("", h.Departments.ListDepartments)
			departments.GET("/create", h.Departments.CreateForm)
			departments.POST("", h.Departments.CreateDepartment)
			departments.GET("/:department", h.Departments.GetDepartment)
			departments.GET("/:department/edit", h.Departments.EditForm)
			departments.PATCH("/:department", h.Departments.UpdateDepartment)
			departments.DELETE("/:department", h.Departments.DeleteDepartment)
		}

		projects := auth.Group("/projects")
		{
			projects.GET("", h.Projects.ListProjects)
			projects.POST("", h.Projects.CreateProject)
			projects.GET("/:project", h.Projects.GetProject)
			projects.PATCH("/:project", h.Projects.UpdateProject)
			projects.DELETE("/:project", h.Projects.DeleteProject)
		}

		checklists := auth.Group("/checklists")
		{
			checklists.GET("/create", h.Checklists.CreateForm)
			checklists.POST("", h.Checklists.CreateChecklist)
			checklists.POST("/suggest-tasks", h.Checklists.SuggestTasks)
			checklists.GET("/:checklist", h.Checklists.GetChecklist)
			checklists.GET("/:checklist/edit", h.Checklists.EditForm)
			checklists.PATCH("/:checklist", h.Checklists.UpdateChecklist)
			checklists.DELETE("/:checklist", h.Checklists.DeleteChecklist)
		}

		auth.PATCH("/tasks/:task", h.Checklists.UpdateTask)
		auth.DELETE("/tasks/:task", h.Checklists.DeleteTask)

		areas := auth.Group("/areas")
		{
			areas.GET("", h.Areas.ListAreas)
			areas.GET("/trashed", h.Areas.ListTrashed)
			areas.POST("", h.Areas.CreateArea)
			areas.PATCH("/:area", h.Areas.UpdateArea)
			areas.DELETE("/:area", h.Areas.TrashArea)
			areas.PATCH("/:area/restore", h.Areas.RestoreArea)
			areas.POST("/:area/duplicate", h.Areas.DuplicateArea)
			areas.DELETE("/:area/force", h.Areas.ForceDeleteArea)
		}

		rooms := auth.Group("/rooms")
		{
			rooms.POST("", h.Areas.CreateRoom)
			rooms.GET("/:room", h.Areas.GetRoom)
			rooms.PATCH("/:room", h.Areas.UpdateRoom)
			rooms.DELETE("/:room", h.Areas.DeleteRoom)
		}
	}
}
