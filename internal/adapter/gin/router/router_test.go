package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"user-registration-service/internal/adapter/db/gormrepo"
	"user-registration-service/internal/adapter/gin/handler"
	usecase "user-registration-service/internal/usecase/user"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RouterTestSuite drives the full HTTP stack against an in-memory SQLite store.
type RouterTestSuite struct {
	suite.Suite
	db         *gorm.DB
	server     *httptest.Server
	httpClient *http.Client
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(suite.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.Require().NoError(gormrepo.AutoMigrate(db))
	suite.db = db

	repo := gormrepo.NewUserRepo(db, log)
	uc := usecase.New(repo, log)
	userHandler := handler.NewUserHandler(uc, log, false)
	systemHandler := handler.NewSystemHandler(sqlDB, "Rota funcionando corretamente!", "user-registration-service", log)

	suite.server = httptest.NewServer(SetupRouter(userHandler, systemHandler, log))
	suite.httpClient = &http.Client{Timeout: 10 * time.Second}
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.server.Close()
	sqlDB, err := suite.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// Helper method to make HTTP requests
func (suite *RouterTestSuite) makeRequest(method, endpoint string, body interface{}) *http.Response {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, suite.server.URL+endpoint, reqBody)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := suite.httpClient.Do(req)
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (suite *RouterTestSuite) register(name, email string) *http.Response {
	return suite.makeRequest(http.MethodPost, "/api/", map[string]string{"name": name, "email": email})
}

func (suite *RouterTestSuite) list() []handler.UserResponse {
	resp := suite.makeRequest(http.MethodGet, "/api/", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var users []handler.UserResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&users))
	return users
}

func (suite *RouterTestSuite) decodeError(resp *http.Response) string {
	var body handler.ErrorResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func (suite *RouterTestSuite) TestRegisterThenList() {
	resp := suite.register("Ana", "ana@x.com")
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	var created handler.UserResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&created))
	assert.Positive(suite.T(), created.ID)
	assert.Equal(suite.T(), "Ana", created.Name)
	assert.Equal(suite.T(), "ana@x.com", created.Email)

	users := suite.list()
	suite.Require().Len(users, 1)
	assert.Equal(suite.T(), created, users[0])
}

func (suite *RouterTestSuite) TestRegisterWithoutSlash() {
	resp := suite.makeRequest(http.MethodPost, "/api", map[string]string{"name": "Ana", "email": "ana@x.com"})
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	resp = suite.makeRequest(http.MethodGet, "/api", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *RouterTestSuite) TestMissingFieldsAddNoRow() {
	suite.register("Ana", "ana@x.com")

	cases := []map[string]string{
		{"name": "Ana"},
		{"email": "ana@x.com"},
		{"name": "", "email": ""},
		{},
	}
	for _, body := range cases {
		resp := suite.makeRequest(http.MethodPost, "/api/", body)
		assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
		assert.Equal(suite.T(), usecase.MissingFieldsMessage, suite.decodeError(resp))
	}

	assert.Len(suite.T(), suite.list(), 1)
}

func (suite *RouterTestSuite) TestDuplicatesAreAllowed() {
	first := suite.register("Ana", "ana@x.com")
	second := suite.register("Ana", "ana@x.com")
	assert.Equal(suite.T(), http.StatusCreated, first.StatusCode)
	assert.Equal(suite.T(), http.StatusCreated, second.StatusCode)

	users := suite.list()
	suite.Require().Len(users, 2)
	assert.NotEqual(suite.T(), users[0].ID, users[1].ID)
}

func (suite *RouterTestSuite) TestListOrderedByName() {
	suite.register("Carol", "carol@x.com")
	suite.register("alice", "alice@x.com")
	suite.register("Bob", "bob@x.com")

	users := suite.list()
	suite.Require().Len(users, 3)
	assert.Equal(suite.T(), []string{"Bob", "Carol", "alice"},
		[]string{users[0].Name, users[1].Name, users[2].Name})
}

func (suite *RouterTestSuite) TestListIsIdempotent() {
	suite.register("Bob", "bob@x.com")
	suite.register("Ana", "ana@x.com")

	assert.Equal(suite.T(), suite.list(), suite.list())
}

func (suite *RouterTestSuite) TestEmptyListIsArray() {
	resp := suite.makeRequest(http.MethodGet, "/api/", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var raw json.RawMessage
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(suite.T(), `[]`, string(raw))
}

func (suite *RouterTestSuite) TestStoreFailure() {
	suite.Require().NoError(suite.db.Migrator().DropTable(&gormrepo.UserSchema{}))

	resp := suite.makeRequest(http.MethodGet, "/api/", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
	msg := suite.decodeError(resp)
	assert.Contains(suite.T(), msg, "no such table")
	assert.NotContains(suite.T(), msg, "failed to list users")

	resp = suite.register("Ana", "ana@x.com")
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
	msg = suite.decodeError(resp)
	assert.Contains(suite.T(), msg, "no such table")
	assert.NotContains(suite.T(), msg, "failed to create user")
}

func (suite *RouterTestSuite) TestUnknownRoutes() {
	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/api/"},
		{http.MethodPut, "/api/"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/health/"},
		{http.MethodGet, "/api//"},
		{http.MethodPost, "/api//"},
	} {
		resp := suite.makeRequest(tc.method, tc.path, nil)
		assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode, tc.method+" "+tc.path)
		assert.Equal(suite.T(), "Rota não encontrada", suite.decodeError(resp))
	}
}

func (suite *RouterTestSuite) TestWelcomeAndHealth() {
	resp := suite.makeRequest(http.MethodGet, "/", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var welcome map[string]string
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&welcome))
	assert.Equal(suite.T(), "Rota funcionando corretamente!", welcome["message"])

	resp = suite.makeRequest(http.MethodGet, "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *RouterTestSuite) TestOpenAPIDocument() {
	resp := suite.makeRequest(http.MethodGet, "/openapi.json", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var doc map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(suite.T(), doc["paths"], "/api/")

	resp = suite.makeRequest(http.MethodGet, "/swagger/index.html", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *RouterTestSuite) TestRequestIDHeader() {
	resp := suite.makeRequest(http.MethodGet, "/api/", nil)
	assert.NotEmpty(suite.T(), resp.Header.Get("X-Request-ID"))
}

func (suite *RouterTestSuite) TestConcurrentRegistrations() {
	done := make(chan int, 5)
	for range 5 {
		go func() {
			body, _ := json.Marshal(map[string]string{"name": "Ana", "email": "ana@x.com"})
			resp, err := suite.httpClient.Post(suite.server.URL+"/api/", "application/json", bytes.NewReader(body))
			if err != nil {
				done <- 0
				return
			}
			_ = resp.Body.Close()
			done <- resp.StatusCode
		}()
	}

	for range 5 {
		assert.Equal(suite.T(), http.StatusCreated, <-done)
	}

	users := suite.list()
	suite.Require().Len(users, 5)
	seen := map[int64]bool{}
	for _, u := range users {
		seen[u.ID] = true
	}
	assert.Len(suite.T(), seen, 5)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
