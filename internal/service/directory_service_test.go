package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/repository/memory"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

type DirectoryServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service *DirectoryService
}

func (suite *DirectoryServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = NewDirectoryService(suite.store.Users())
}

func (suite *DirectoryServiceTestSuite) TestFirstSightCreatesStudent() {
	user, err := suite.service.ResolveOrCreate(context.Background(), "subject-1", "alex@campus.edu", "Alex Kim")
	suite.Require().NoError(err)

	suite.NotEmpty(user.ID)
	suite.Equal(domain.UserRoleStudent, user.Role)
	suite.Equal("alex@campus.edu", user.Email)
	suite.True(user.IsActive)
	suite.Require().NotNil(user.AuthUID)
	suite.Equal("subject-1", *user.AuthUID)
}

func (suite *DirectoryServiceTestSuite) TestRepeatLookupReturnsSameRecord() {
	first, err := suite.service.ResolveOrCreate(context.Background(), "subject-1", "alex@campus.edu", "Alex Kim")
	suite.Require().NoError(err)

	second, err := suite.service.ResolveOrCreate(context.Background(), "subject-1", "alex@campus.edu", "Alex Kim")
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
}

func (suite *DirectoryServiceTestSuite) TestEmailMatchLinksAuthUID() {
	pre := &domain.User{Email: "alex@campus.edu", Name: "Alex Kim", Role: domain.UserRoleStudent, IsActive: true}
	suite.Require().NoError(suite.store.Users().Create(context.Background(), pre))

	user, err := suite.service.ResolveOrCreate(context.Background(), "subject-1", "alex@campus.edu", "Alex Kim")
	suite.Require().NoError(err)
	suite.Equal(pre.ID, user.ID)
	suite.Require().NotNil(user.AuthUID)
	suite.Equal("subject-1", *user.AuthUID)

	stored, err := suite.store.Users().GetByAuthUID(context.Background(), "subject-1")
	suite.Require().NoError(err)
	suite.Equal(pre.ID, stored.ID)
}

func (suite *DirectoryServiceTestSuite) TestMissingEmailGetsPlaceholder() {
	user, err := suite.service.ResolveOrCreate(context.Background(), "subject-1", "", "Alex Kim")
	suite.Require().NoError(err)
	suite.Equal("subject-1@example.invalid", user.Email)
}

func (suite *DirectoryServiceTestSuite) TestMissingSubjectRejected() {
	_, err := suite.service.ResolveOrCreate(context.Background(), "", "alex@campus.edu", "Alex Kim")
	suite.Require().Error(err)
	var domainErr *apperrors.DomainError
	suite.Require().ErrorAs(err, &domainErr)
	suite.Equal("UNAUTHORIZED", domainErr.Code)
}

func (suite *DirectoryServiceTestSuite) TestResolveStudentRef() {
	user, err := suite.service.ResolveOrCreate(context.Background(), "subject-1", "alex@campus.edu", "Alex Kim")
	suite.Require().NoError(err)

	byID, err := suite.service.ResolveStudentRef(context.Background(), user.ID)
	suite.Require().NoError(err)
	suite.Equal(user.ID, byID.ID)

	byUID, err := suite.service.ResolveStudentRef(context.Background(), "subject-1")
	suite.Require().NoError(err)
	suite.Equal(user.ID, byUID.ID)

	_, err = suite.service.ResolveStudentRef(context.Background(), "subject-unknown")
	var domainErr *apperrors.DomainError
	suite.Require().ErrorAs(err, &domainErr)
	suite.Equal("NOT_FOUND", domainErr.Code)
}

func TestDirectoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryServiceTestSuite))
}
