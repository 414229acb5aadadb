package handlers

import (
	"fmt"
	"net/http"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
)

func (suite *HandlerTestSuite) TestSuggestTasks_Unconfigured() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})

	w := suite.loginAs(admin).json(http.MethodPost, "/checklists/suggest-tasks", map[string]string{
		"text": "Order gels by Friday and check the fog machine.",
	})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestChecklistFlow() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})
	cl := suite.loginAs(admin)

	project := &models.Project{Name: "Hamlet"}
	suite.Require().NoError(suite.db.Create(project).Error)

	w := cl.json(http.MethodPost, "/checklists", map[string]any{
		"name":       "Load-in",
		"project_id": project.ID,
		"tasks": []map[string]string{
			{"name": "Hang lights", "deadline": "2026-11-02"},
		},
	})
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())

	var task models.Task
	suite.Require().NoError(suite.db.First(&task).Error)
	suite.Equal(fmt.Sprintf("/checklists/%d", task.ChecklistID), w.Header().Get("Location"))

	w = cl.json(http.MethodPatch, fmt.Sprintf("/tasks/%d", task.ID), map[string]bool{"done": true})
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())
	suite.Require().NoError(suite.db.First(&task, task.ID).Error)
	suite.True(task.Done)

	w = cl.json(http.MethodGet, fmt.Sprintf("/checklists/%d", task.ChecklistID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := suite.decodePage(w)
	suite.Equal("Task saved.", page.Flash["success"])
	checklist := page.Props["checklist"].(map[string]any)
	suite.Len(checklist["tasks"], 1)
}

func (suite *HandlerTestSuite) TestCreateChecklist_Validation() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})

	w := suite.loginAs(admin).json(http.MethodPost, "/checklists", map[string]any{
		"tasks": []map[string]string{{"name": ""}},
	})
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)

	details := suite.decodeError(w)["details"]
	suite.Contains(details, "name")
	suite.Contains(details, "project_id")
	suite.Contains(details, "tasks.0.name")
}
