package router

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commonConfig "github.com/PetA199003/GBU-Management/common/config"
	"github.com/PetA199003/GBU-Management/common/database"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/config"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const password = "geheim123"

type envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

type testServer struct {
	t      *testing.T
	app    *fiber.App
	svcCtx *svc.ServiceContext
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.Open(&commonConfig.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	cfg := config.Default()
	require.NoError(t, auth.InitSaToken(&cfg.SaToken, &cfg.Redis))
	svcCtx := svc.NewServiceContext(cfg, db, nil)
	t.Cleanup(func() {
		svcCtx.Audit.Flush()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testServer{t: t, app: NewApp(svcCtx), svcCtx: svcCtx}
}

func (s *testServer) user(username, role string) *model.User {
	hash, err := auth.HashPassword(password)
	require.NoError(s.t, err)
	u := &model.User{Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role, Active: true}
	require.NoError(s.t, s.svcCtx.DB.Create(u).Error)
	return u
}

func (s *testServer) do(method, path, token, body string) (*http.Response, envelope) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("satoken", token)
	}
	return s.send(req)
}

func (s *testServer) send(req *http.Request) (*http.Response, envelope) {
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		_ = utils.Unmarshal(data, &env)
	}
	return resp, env
}

func (s *testServer) login(username string) string {
	resp, env := s.do(http.MethodPost, "/api/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(s.t, fiber.StatusOK, resp.StatusCode, env.Message)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, env := s.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", env.Data["status"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestLoginAndSession(t *testing.T) {
	s := newTestServer(t)
	s.user("anna", model.RoleProjektleiter)

	resp, env := s.do(http.MethodPost, "/api/auth/login", "", `{"username":"anna","password":"falsch"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, env.Code)

	resp, _ = s.do(http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := s.login("anna")
	resp, env = s.do(http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "anna", env.Data["username"])

	// Bearer 头同样有效
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, _ = s.send(req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/api/auth/logout", token, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGuards(t *testing.T) {
	s := newTestServer(t)
	s.user("admin", model.RoleAdmin)
	staff := s.user("max", model.RoleUser)

	userToken := s.login("max")
	resp, _ := s.do(http.MethodGet, "/api/users", userToken, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/audit", userToken, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	adminToken := s.login("admin")
	resp, _ = s.do(http.MethodGet, "/api/users", adminToken, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// 停用后旧会话失效
	resp, _ = s.do(http.MethodDelete, "/api/users/"+utils.MarshalString(staff.ID), adminToken, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/auth/me", userToken, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProjectFlowAndExports(t *testing.T) {
	s := newTestServer(t)
	s.user("anna", model.RoleProjektleiter)
	token := s.login("anna")

	resp, env := s.do(http.MethodPost, "/api/projects", token,
		`{"name":"Open Air","location":"Bern","start_date":"2026-07-01","end_date":"2026-07-03","indoor_outdoor":"outdoor"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	assert.Equal(t, "sommer", env.Data["season"])
	id := utils.MarshalString(env.Data["id"])

	resp, env = s.do(http.MethodPost, "/api/projects", token,
		`{"name":"Kaputt","start_date":"2026-07-03","end_date":"2026-07-01"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, env.Message)

	resp, env = s.do(http.MethodPost, "/api/gbu/gefaehrdungen", token,
		`{"project_id":`+id+`,"tätigkeit":"Aufbau","gefährdung":"Absturz","schadenschwere":4,"wahrscheinlichkeit":3}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	resp, _ = s.do(http.MethodGet, "/api/pdf/project/"+id+"/gbu", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	resp, _ = s.do(http.MethodGet, "/api/export/project/"+id+"/gbu.xlsx", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")

	resp, _ = s.do(http.MethodGet, "/api/pdf/project/999/gbu", token, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/projects/abc", token, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParticipantImportUpload(t *testing.T) {
	s := newTestServer(t)
	s.user("anna", model.RoleProjektleiter)
	token := s.login("anna")

	resp, env := s.do(http.MethodPost, "/api/projects", token, `{"name":"Messe","start_date":"2026-03-10","end_date":"2026-03-12"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	id := utils.MarshalString(env.Data["id"])

	upload := func(filename, content string) (*http.Response, envelope) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/participants/project/"+id+"/import-csv", &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		req.Header.Set("satoken", token)
		return s.send(req)
	}

	resp, env = upload("liste.csv", "first_name,last_name,email\nJonas,Müller,j@example.com\n,,leer@example.com\n")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	assert.EqualValues(t, 1, env.Data["imported_count"])
	assert.Len(t, env.Data["errors"], 1)

	resp, _ = upload("liste.txt", "x")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = s.do(http.MethodGet, "/api/participants/project/"+id+"/stats", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, env.Data["pending"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	resp, env := s.do(http.MethodGet, "/nirgendwo", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.Code)
}
