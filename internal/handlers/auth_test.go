package handlers

import (
	"net/http"

	"github.com/artwork-tools/artwork-admin/internal/testutil"
)

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.newClient().json(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestSetup() {
	cl := suite.newClient()

	w := cl.json(http.MethodGet, "/setup", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Auth/Setup", suite.decodePage(w).Component)

	w = cl.json(http.MethodPost, "/setup", map[string]string{
		"first_name":            "Ada",
		"last_name":             "Lovelace",
		"email":                 "ada@example.com",
		"password":              testutil.Password,
		"password_confirmation": testutil.Password,
	})
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())
	suite.Equal("/dashboard", w.Header().Get("Location"))

	w = cl.json(http.MethodGet, "/me", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"roles":["admin"]`)

	w = suite.newClient().json(http.MethodGet, "/setup", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestLogin() {
	user := testutil.CreateUser(suite.T(), suite.db, []string{"user"})

	w := suite.newClient().json(http.MethodPost, "/login", map[string]string{
		"email":    user.Email,
		"password": "wrong-password",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	cl := suite.loginAs(user)
	w = cl.json(http.MethodGet, "/me", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), user.Email)

	w = cl.json(http.MethodPost, "/logout", nil)
	suite.Equal(http.StatusFound, w.Code)

	w = cl.json(http.MethodGet, "/me", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRequiresAuthentication() {
	for _, path := range []string{"/dashboard", "/users", "/departments", "/areas", "/users/invitations"} {
		w := suite.newClient().json(http.MethodGet, path, nil)
		suite.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (suite *HandlerTestSuite) TestDashboard() {
	user := testutil.CreateUser(suite.T(), suite.db, []string{"user"})

	w := suite.loginAs(user).json(http.MethodGet, "/dashboard", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	page := suite.decodePage(w)
	suite.Equal("Dashboard", page.Component)
	suite.Contains(page.Props, "user")
	suite.Contains(page.Props, "checklists")
}
