package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
)

const svgLogo = `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`

func (suite *HandlerTestSuite) multipartRequest(method, path string, fields map[string]string, fileField, filename, content string) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		suite.Require().NoError(writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		suite.Require().NoError(err)
		_, err = part.Write([]byte(content))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (suite *HandlerTestSuite) TestCreateDepartment_WithLogo() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})
	cl := suite.loginAs(admin)

	req := suite.multipartRequest(http.MethodPost, "/departments",
		map[string]string{"name": "Lighting", "svg_name": "bulb"}, "logo", "logo.svg", svgLogo)
	w := cl.do(req)
	suite.Require().Equal(http.StatusFound, w.Code, w.Body.String())

	var department models.Department
	suite.Require().NoError(suite.db.First(&department).Error)
	suite.Equal("Lighting", department.Name)
	suite.Require().NotEmpty(department.LogoPath)

	_, err := os.Stat(filepath.Join(suite.storageRoot, filepath.FromSlash(department.LogoPath)))
	suite.NoError(err)

	w = cl.json(http.MethodGet, w.Header().Get("Location"), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := suite.decodePage(w)
	suite.Equal("Departments/Show", page.Component)
	suite.Equal("Department created.", page.Flash["success"])

	props := page.Props["department"].(map[string]any)
	suite.True(strings.HasPrefix(props["logo_url"].(string), "/storage/"))
}

func (suite *HandlerTestSuite) TestCreateDepartment_RejectsNonImage() {
	admin := testutil.CreateUser(suite.T(), suite.db, []string{"admin"})

	req := suite.multipartRequest(http.MethodPost, "/departments",
		map[string]string{"name": "Lighting"}, "logo", "logo.exe", "MZ")
	w := suite.loginAs(admin).do(req)
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.decodeError(w)["details"], "logo")

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Department{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestDepartments_PlainUserCannotCreate() {
	user := testutil.CreateUser(suite.T(), suite.db, []string{"user"})
	cl := suite.loginAs(user)

	w := cl.json(http.MethodGet, "/departments", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(false, suite.decodePage(w).Props["can_create"])

	w = cl.json(http.MethodPost, "/departments", map[string]string{"name": "Sound"})
	suite.Equal(http.StatusForbidden, w.Code)
}
