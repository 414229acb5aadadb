package handlers

import (
	"fmt"
	"net/http"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
)

func (suite *HandlerTestSuite) TestAreaLifecycle() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})
	cl := suite.loginAs(admin)

	w := cl.json(http.MethodPost, "/areas", map[string]string{"name": "Main stage"})
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())

	var area models.Area
	suite.Require().NoError(suite.db.First(&area).Error)
	path := fmt.Sprintf("/areas/%d", area.ID)

	// an active area cannot be force deleted
	w = cl.json(http.MethodDelete, path+"/force", nil)
	suite.Require().Equal(http.StatusConflict, w.Code)

	w = cl.json(http.MethodDelete, path, nil)
	suite.Require().Equal(http.StatusFound, w.Code)

	w = cl.json(http.MethodGet, "/areas/trashed", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := suite.decodePage(w)
	suite.Equal("Areas/Trashed", page.Component)
	suite.Len(page.Props["areas"], 1)

	w = cl.json(http.MethodDelete, path+"/force", nil)
	suite.Require().Equal(http.StatusFound, w.Code)
	suite.Equal("/areas/trashed", w.Header().Get("Location"))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Area{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestAreas_RequireManagePermission() {
	user := testutil.CreateUser(suite.T(), suite.db, []string{"user"})

	w := suite.loginAs(user).json(http.MethodGet, "/areas", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestRoom_InvalidID() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})
	cl := suite.loginAs(admin)

	for _, path := range []string{"/rooms/abc", "/rooms/0", "/rooms/999"} {
		w := cl.json(http.MethodGet, path, nil)
		suite.Equal(http.StatusNotFound, w.Code, path)
	}
}
