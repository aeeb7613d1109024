package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"go.uber.org/zap"

	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/repository/memory"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

type AdminServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service *AdminService
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.store.SeedDepartments(domain.Department{ID: "it", Name: "IT Services"})
	suite.service = NewAdminService(AdminDependencies{
		UserRepo:       suite.store.Users(),
		AdminCodeRepo:  suite.store.AdminCodes(),
		DepartmentRepo: suite.store.Departments(),
		AuditRepo:      suite.store.Audit(),
		Logger:         zap.NewNop(),
	})
}

func (suite *AdminServiceTestSuite) seedCode(code string, expiresAt *time.Time, active bool) {
	hashed, err := auth.HashCode(code, bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.store.SeedAdminCode(domain.AdminCode{
		DepartmentID: "it",
		CodeHash:     hashed,
		ExpiresAt:    expiresAt,
		IsActive:     active,
	})
}

func (suite *AdminServiceTestSuite) createStudent() *domain.User {
	uid := "subject-1"
	user := &domain.User{AuthUID: &uid, Email: "alex@campus.edu", Name: "Alex Kim", Role: domain.UserRoleStudent, IsActive: true}
	suite.Require().NoError(suite.store.Users().Create(context.Background(), user))
	return user
}

func (suite *AdminServiceTestSuite) TestRedeemElevatesRole() {
	suite.seedCode("it-sesame", nil, true)
	student := suite.createStudent()

	elevated, err := suite.service.RedeemCode(context.Background(), student, "it", "it-sesame")
	suite.Require().NoError(err)
	suite.Equal(domain.UserRoleAdmin, elevated.Role)
	suite.Require().NotNil(elevated.AdminDepartment)
	suite.Equal("it", *elevated.AdminDepartment)

	stored, err := suite.store.Users().GetByID(context.Background(), student.ID)
	suite.Require().NoError(err)
	suite.True(stored.IsAdmin())

	entries := suite.store.AuditEntries()
	suite.Require().Len(entries, 1)
	suite.Equal(domain.AuditActionAdminCodeRedeemed, entries[0].Action)
}

func (suite *AdminServiceTestSuite) TestWrongCodeForbidden() {
	suite.seedCode("it-sesame", nil, true)
	student := suite.createStudent()

	_, err := suite.service.RedeemCode(context.Background(), student, "it", "open-sesame")
	suite.requireCode(err, "FORBIDDEN")
}

func (suite *AdminServiceTestSuite) TestExpiredCodeForbidden() {
	past := time.Now().Add(-time.Hour)
	suite.seedCode("it-sesame", &past, true)
	student := suite.createStudent()

	_, err := suite.service.RedeemCode(context.Background(), student, "it", "it-sesame")
	suite.requireCode(err, "FORBIDDEN")
}

func (suite *AdminServiceTestSuite) TestInactiveCodeForbidden() {
	suite.seedCode("it-sesame", nil, false)
	student := suite.createStudent()

	_, err := suite.service.RedeemCode(context.Background(), student, "it", "it-sesame")
	suite.requireCode(err, "FORBIDDEN")
}

func (suite *AdminServiceTestSuite) TestUnknownDepartment() {
	student := suite.createStudent()

	_, err := suite.service.RedeemCode(context.Background(), student, "catering", "whatever")
	suite.requireCode(err, "NOT_FOUND")
}

func (suite *AdminServiceTestSuite) requireCode(err error, code string) {
	suite.Require().Error(err)
	var domainErr *apperrors.DomainError
	suite.Require().ErrorAs(err, &domainErr)
	suite.Equal(code, domainErr.Code)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
