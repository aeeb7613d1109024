package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/campusflow/disruption-service/internal/api/http/handlers"
	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/config"
	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/events"
	"github.com/campusflow/disruption-service/internal/observability"
	"github.com/campusflow/disruption-service/internal/repository/memory"
	"github.com/campusflow/disruption-service/internal/service"
	"github.com/campusflow/disruption-service/internal/tone"
	"github.com/campusflow/disruption-service/internal/worker"
)

// stubVerifier resolves tokens from a fixed table instead of verifying
// signatures.
type stubVerifier struct {
	tokens map[string]*auth.Claims
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*auth.Claims, error) {
	claims, ok := v.tokens[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return claims, nil
}

// RouterTestSuite drives the full HTTP surface over the in-memory store.
type RouterTestSuite struct {
	suite.Suite
	app      *fiber.App
	store    *memory.Store
	verifier *stubVerifier
}

func (suite *RouterTestSuite) SetupTest() {
	logger := zap.NewNop()

	suite.store = memory.NewStore()
	suite.store.SeedDepartments(
		domain.Department{ID: "infrastructure", Name: "Infrastructure"},
		domain.Department{ID: "it", Name: "IT Services"},
	)
	suite.verifier = &stubVerifier{tokens: map[string]*auth.Claims{
		"student-token": {UID: "uid-student", Email: "alex@campus.edu", Name: "Alex Kim", Role: "student"},
		"admin-token":   {UID: "uid-admin", Email: "ops@campus.edu", Name: "Dana Ops", Role: "admin"},
	}}

	directory := service.NewDirectoryService(suite.store.Users())
	toneService := service.NewToneService(tone.NewLexiconAnnotator(), time.Second, logger)
	dispatcher := events.NewInMemoryDispatcher()

	disruptionService := service.NewDisruptionService(service.DisruptionDependencies{
		DisruptionRepo: suite.store.Disruptions(),
		ResolutionRepo: suite.store.ResolutionRepo(),
		ImageRepo:      suite.store.Images(),
		DepartmentRepo: suite.store.Departments(),
		AuditRepo:      suite.store.Audit(),
		Directory:      directory,
		Tone:           toneService,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		UserRepo:       suite.store.Users(),
		AdminCodeRepo:  suite.store.AdminCodes(),
		DepartmentRepo: suite.store.Departments(),
		AuditRepo:      suite.store.Audit(),
		Logger:         logger,
	})
	notificationService := service.NewNotificationService(dispatcher, suite.store.Notifications(), logger, config.NotificationConfig{})
	worker.StartNotificationWorker(notificationService)

	suite.app = fiber.New()
	RegisterMiddlewares(suite.app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(suite.app, RouteConfig{
		Health:         handlers.NewHealthHandler("disruption-service", "test", nil, nil),
		Disruptions:    handlers.NewDisruptionsHandler(disruptionService),
		Tone:           handlers.NewToneHandler(toneService),
		Admin:          handlers.NewAdminHandler(adminService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Uploads:        handlers.NewUploadsHandler(""),
		AuthMiddleware: auth.NewMiddleware(suite.verifier, directory),
	})
}

func (suite *RouterTestSuite) request(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := suite.app.Test(req, -1)
	suite.Require().NoError(err)
	return resp
}

func (suite *RouterTestSuite) decode(resp *http.Response, target any) {
	defer resp.Body.Close()
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(target))
}

func (suite *RouterTestSuite) createDisruption(token, id string) {
	resp := suite.request(http.MethodPost, "/api/disruptions", token, fiber.Map{
		"disruptionId": id,
		"studentName":  "Alex Kim",
		"studentEmail": "alex@campus.edu",
		"category":     "infrastructure",
		"priority":     "high",
		"description":  "Urgent water leak flooding the basement",
	})
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func (suite *RouterTestSuite) TestHealthLive() {
	resp := suite.request(http.MethodGet, "/health/live", "", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	suite.Equal("alive", body["status"])
}

func (suite *RouterTestSuite) TestCreateRequiresAuth() {
	resp := suite.request(http.MethodPost, "/api/disruptions", "", fiber.Map{"disruptionId": "DIS-001"})
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = suite.request(http.MethodPost, "/api/disruptions", "bogus-token", fiber.Map{"disruptionId": "DIS-001"})
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (suite *RouterTestSuite) TestCreateAndFetch() {
	suite.createDisruption("student-token", "DIS-001")

	resp := suite.request(http.MethodGet, "/api/disruptions/DIS-001", "", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	suite.Equal("DIS-001", body["disruptionId"])
	suite.Equal("pending", body["status"])
	suite.Equal("Alex Kim", body["studentName"])
	// The anonymous read never exposes the reporter's email.
	suite.NotContains(body, "studentEmail")
	suite.Contains(body, "aiToneAnalysis")
}

func (suite *RouterTestSuite) TestCreateDuplicateConflicts() {
	suite.createDisruption("student-token", "DIS-001")

	resp := suite.request(http.MethodPost, "/api/disruptions", "student-token", fiber.Map{
		"disruptionId": "DIS-001",
		"studentName":  "Alex Kim",
		"studentEmail": "alex@campus.edu",
		"category":     "infrastructure",
		"priority":     "high",
		"description":  "same id again",
	})
	suite.Equal(http.StatusConflict, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	errObj := body["error"].(map[string]any)
	suite.Equal("CONFLICT", errObj["code"])
}

func (suite *RouterTestSuite) TestCreateValidationFails() {
	resp := suite.request(http.MethodPost, "/api/disruptions", "student-token", fiber.Map{
		"disruptionId": "DIS-001",
		"priority":     "high",
	})
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func (suite *RouterTestSuite) TestGetUnknownDisruption() {
	resp := suite.request(http.MethodGet, "/api/disruptions/DIS-404", "", nil)
	suite.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (suite *RouterTestSuite) TestStudentListOwnership() {
	suite.createDisruption("student-token", "DIS-001")

	resp := suite.request(http.MethodGet, "/api/disruptions/student/uid-student", "student-token", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []map[string]any
	suite.decode(resp, &items)
	suite.Require().Len(items, 1)
	suite.Equal("DIS-001", items[0]["disruptionId"])

	// A student cannot list someone else's disruptions.
	resp = suite.request(http.MethodGet, "/api/disruptions/student/uid-admin", "student-token", nil)
	suite.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// An admin can.
	resp = suite.request(http.MethodGet, "/api/disruptions/student/uid-student", "admin-token", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (suite *RouterTestSuite) TestCategoryListAdminOnly() {
	suite.createDisruption("student-token", "DIS-001")

	resp := suite.request(http.MethodGet, "/api/disruptions/admin/infrastructure", "student-token", nil)
	suite.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = suite.request(http.MethodGet, "/api/disruptions/admin/infrastructure", "admin-token", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []map[string]any
	suite.decode(resp, &items)
	suite.Require().Len(items, 1)
	suite.Equal("DIS-001", items[0]["disruptionId"])
}

func (suite *RouterTestSuite) TestResolveFlow() {
	suite.createDisruption("student-token", "DIS-001")

	payload := fiber.Map{"resolutionDescription": "Pipe replaced"}

	resp := suite.request(http.MethodPatch, "/api/disruptions/DIS-001/resolve", "student-token", payload)
	suite.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = suite.request(http.MethodPatch, "/api/disruptions/DIS-001/resolve", "admin-token", payload)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	suite.Equal("resolved", body["status"])
	suite.Contains(body, "resolvedAt")
	// The admin surface carries the reporter's email.
	suite.Equal("alex@campus.edu", body["studentEmail"])

	// Second resolve conflicts.
	resp = suite.request(http.MethodPatch, "/api/disruptions/DIS-001/resolve", "admin-token", payload)
	suite.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// History keeps exactly the winning resolution.
	resp = suite.request(http.MethodGet, "/api/disruptions/DIS-001/resolutions", "admin-token", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	var resolutions []map[string]any
	suite.decode(resp, &resolutions)
	suite.Require().Len(resolutions, 1)
	suite.Equal("Pipe replaced", resolutions[0]["resolutionDescription"])
}

func (suite *RouterTestSuite) TestAnalyzeTonePublic() {
	resp := suite.request(http.MethodPost, "/api/analyze-tone", "", fiber.Map{
		"description": "Urgent emergency, water flooding everywhere",
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	suite.Equal("urgent", body["tone"])
	suite.NotEmpty(body["recommendation"])
}

func (suite *RouterTestSuite) TestDepartmentsPublic() {
	resp := suite.request(http.MethodGet, "/api/departments", "", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []map[string]any
	suite.decode(resp, &items)
	suite.Len(items, 2)
}

func (suite *RouterTestSuite) TestNotificationsFollowEvents() {
	suite.createDisruption("student-token", "DIS-001")

	resp := suite.request(http.MethodGet, "/api/notifications", "student-token", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []map[string]any
	suite.decode(resp, &items)
	suite.Require().Len(items, 1)
	suite.Equal("DIS-001", items[0]["disruptionId"])
	suite.Equal("in_app", items[0]["channel"])
}

func (suite *RouterTestSuite) TestUploadStub() {
	resp := suite.request(http.MethodPost, "/api/upload/disruption-image", "student-token", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	url, _ := body["url"].(string)
	suite.NotEmpty(url)
	suite.Contains(url, "/disruptions/")
}

func (suite *RouterTestSuite) TestMiddlewareRendersErrorShape() {
	resp := suite.request(http.MethodGet, "/api/disruptions/student/uid-student", "", nil)
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	errObj, ok := body["error"].(map[string]any)
	suite.Require().True(ok, "expected error envelope, got %v", body)
	suite.Equal("UNAUTHORIZED", errObj["code"])
	suite.NotEmpty(errObj["message"])
}

func (suite *RouterTestSuite) TestRedeemCodeElevates() {
	hashed, err := auth.HashCode("it-sesame", 4)
	suite.Require().NoError(err)
	suite.store.SeedAdminCode(domain.AdminCode{DepartmentID: "it", CodeHash: hashed, IsActive: true})

	resp := suite.request(http.MethodPost, "/api/admin/redeem-code", "student-token", fiber.Map{
		"department": "it",
		"code":       "it-sesame",
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var body map[string]any
	suite.decode(resp, &body)
	suite.Equal("admin", body["role"])
	suite.Equal("it", body["adminDepartment"])

	// The elevated student can now use admin surfaces.
	resp = suite.request(http.MethodGet, "/api/disruptions/admin/it", "student-token", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (suite *RouterTestSuite) TestAdminClaimShortCircuits() {
	// A token asserting admin gets admin access without a directory role.
	suite.verifier.tokens["claim-admin"] = &auth.Claims{UID: "uid-claim", Email: "claim@campus.edu", Admin: true}

	resp := suite.request(http.MethodGet, "/api/disruptions/admin/infrastructure", "claim-admin", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
