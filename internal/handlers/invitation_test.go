package handlers

import (
	"net/http"
	"net/url"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
	"github.com/artwork-tools/artwork-admin/internal/utils"
)

func (suite *HandlerTestSuite) seedInvitation(email string) (*models.Invitation, string) {
	plaintext, hash, err := utils.IssueToken(constants.InvitationTokenLength)
	suite.Require().NoError(err)

	inv := &models.Invitation{Email: email, TokenHash: hash, Role: "user"}
	suite.Require().NoError(suite.db.Create(inv).Error)
	return inv, plaintext
}

func (suite *HandlerTestSuite) TestInvite() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})
	department := testutil.CreateDepartment(suite.T(), suite.db, "Lighting")
	cl := suite.loginAs(admin)

	w := cl.json(http.MethodGet, "/users/invitations/invite", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := suite.decodePage(w)
	suite.Equal("Users/Invite", page.Component)
	suite.Contains(page.Props, "roles")

	w = cl.json(http.MethodPost, "/users/invitations", map[string]any{
		"emails":         []string{"a@x.com", "b@x.com"},
		"role":           "admin",
		"permissions":    []string{"invite users", "view users"},
		"department_ids": []uint64{department.ID},
	})
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())
	suite.Equal("/users/invitations", w.Header().Get("Location"))
	suite.Equal(2, suite.notifier.count())

	w = cl.json(http.MethodGet, "/users/invitations", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page = suite.decodePage(w)
	suite.Equal("Users/Invitations", page.Component)
	suite.Equal("2 invitation(s) sent.", page.Flash["success"])
	suite.Len(page.Props["invitations"], 2)

	// the flash is shown once
	w = cl.json(http.MethodGet, "/users/invitations", nil)
	suite.Empty(suite.decodePage(w).Flash)
}

func (suite *HandlerTestSuite) TestInvite_ValidationAndForbidden() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})
	plain := testutil.CreateUser(suite.T(), suite.db, []string{"user"})

	w := suite.loginAs(admin).json(http.MethodPost, "/users/invitations", map[string]any{
		"emails": []string{"not-an-email"},
		"role":   "user",
	})
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	body := suite.decodeError(w)
	suite.Equal("VALIDATION_FAILED", body["code"])
	suite.Contains(body["details"], "emails.0")

	w = suite.loginAs(plain).json(http.MethodPost, "/users/invitations", map[string]any{
		"emails": []string{"a@x.com"},
		"role":   "user",
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestAccept() {
	inv, token := suite.seedInvitation("ada@x.com")
	cl := suite.newClient()

	q := url.Values{"token": {token}, "email": {inv.Email}}
	w := cl.json(http.MethodGet, "/users/invitations/accept?"+q.Encode(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := suite.decodePage(w)
	suite.Equal("Users/Accept", page.Component)
	suite.Equal(token, page.Props["token"])

	w = cl.json(http.MethodPost, "/users/invitations/accept", map[string]string{
		"email":                 inv.Email,
		"token":                 token,
		"first_name":            "Ada",
		"last_name":             "Lovelace",
		"password":              testutil.Password,
		"password_confirmation": testutil.Password,
	})
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())
	suite.Equal("/dashboard", w.Header().Get("Location"))

	w = cl.json(http.MethodGet, "/dashboard", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Welcome to Artwork.", suite.decodePage(w).Flash["success"])

	var remaining int64
	suite.Require().NoError(suite.db.Model(&models.Invitation{}).Count(&remaining).Error)
	suite.Zero(remaining)
}

func (suite *HandlerTestSuite) TestAccept_WrongToken() {
	inv, _ := suite.seedInvitation("ada@x.com")

	w := suite.newClient().json(http.MethodPost, "/users/invitations/accept", map[string]string{
		"email":                 inv.Email,
		"token":                 "AAAAAAAAAAAAAAAAAAAA",
		"first_name":            "Ada",
		"last_name":             "Lovelace",
		"password":              testutil.Password,
		"password_confirmation": testutil.Password,
	})
	suite.Equal(http.StatusForbidden, w.Code)

	var users int64
	suite.Require().NoError(suite.db.Model(&models.User{}).Count(&users).Error)
	suite.Zero(users)
}

func (suite *HandlerTestSuite) TestAccept_WrongTokenWithoutNames() {
	inv, _ := suite.seedInvitation("ada@x.com")

	w := suite.newClient().json(http.MethodPost, "/users/invitations/accept", map[string]string{
		"email":                 inv.Email,
		"token":                 "invalidToken12345678",
		"password":              testutil.Password,
		"password_confirmation": testutil.Password,
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestAccept_RateLimitedSeparatelyFromLogin() {
	inv, _ := suite.seedInvitation("ada@x.com")
	cl := suite.newClient()

	for i := 0; i < suite.rateLimit.Requests; i++ {
		w := cl.json(http.MethodPost, "/login", map[string]string{"email": "nobody@x.com", "password": "wrong"})
		suite.Require().Equal(http.StatusUnauthorized, w.Code)
	}
	w := cl.json(http.MethodPost, "/login", map[string]string{"email": "nobody@x.com", "password": "wrong"})
	suite.Require().Equal(http.StatusTooManyRequests, w.Code)

	w = cl.json(http.MethodPost, "/users/invitations/accept", map[string]string{
		"email":                 inv.Email,
		"token":                 "invalidToken12345678",
		"password":              testutil.Password,
		"password_confirmation": testutil.Password,
	})
	suite.Equal(http.StatusForbidden, w.Code)
}
