package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/core/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsToOperator() {
	req := dto.CreateUserRequest{Username: "jdoe", Name: "J. Doe", Password: "password123"}
	suite.mockUserRepo.On("SaveUser", suite.ctx,
		mock.MatchedBy(func(u domain.User) bool {
			return u.Username == "jdoe" &&
				u.Role == domain.RoleOperator &&
				u.PasswordHash != "" &&
				u.PasswordHash != "password123" &&
				utils.CheckPasswordHash("password123", u.PasswordHash)
		})).Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleOperator, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	req := dto.CreateUserRequest{Username: "jdoe", Name: "J. Doe", Password: "password123", Role: "SUPERVISOR"}

	_, err := suite.service.CreateUser(suite.ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_ExplicitQCRole() {
	req := dto.CreateUserRequest{Username: "inspector", Name: "Inspector", Password: "password123", Role: "QC"}
	suite.mockUserRepo.On("SaveUser", suite.ctx,
		mock.MatchedBy(func(u domain.User) bool { return u.Role == domain.RoleQC })).
		Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleQC, user.Role)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "user-1", Username: "jdoe", PasswordHash: hash, Role: domain.RoleOperator}
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "jdoe").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(suite.ctx, "jdoe", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "user-1", Username: "jdoe", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "jdoe").Return(stored, nil).Once()

	_, err = suite.service.AuthenticateUser(suite.ctx, "jdoe", "battery-staple")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(suite.ctx, "ghost", "whatever")

	suite.Require().Error(err)
	// Indistinguishable from a wrong password on purpose.
	suite.ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfNameChange() {
	self := &domain.User{UserID: "user-1", Username: "jdoe", Name: "J. Doe", Role: domain.RoleOperator}
	newName := "Jane Doe"
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(self, nil).Twice()
	suite.mockUserRepo.On("UpdateUser", suite.ctx,
		mock.MatchedBy(func(u domain.User) bool {
			return u.UserID == "user-1" && u.Name == "Jane Doe" && u.Role == domain.RoleOperator
		})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{Name: &newName}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("Jane Doe", updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_RoleChangeNeedsElevatedRole() {
	self := &domain.User{UserID: "user-1", Username: "jdoe", Role: domain.RoleOperator}
	newRole := "QC"
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(self, nil).Twice()

	_, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{Role: &newRole}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPermissionDenied)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_ManagerChangesOtherUsersRole() {
	manager := &domain.User{UserID: "mgr-1", Username: "boss", Role: domain.RoleManager}
	target := &domain.User{UserID: "user-1", Username: "jdoe", Role: domain.RoleOperator}
	newRole := "QC"
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "mgr-1").Return(manager, nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx,
		mock.MatchedBy(func(u domain.User) bool {
			return u.UserID == "user-1" && u.Role == domain.RoleQC && u.LastUpdatedBy == "mgr-1"
		})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, "user-1", dto.UpdateUserRequest{Role: &newRole}, "mgr-1")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleQC, updated.Role)
}

func (suite *UserServiceTestSuite) TestDeleteUser_OtherUserDenied() {
	operator := &domain.User{UserID: "user-2", Username: "peer", Role: domain.RoleOperator}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-2").Return(operator, nil).Once()

	err := suite.service.DeleteUser(suite.ctx, "user-1", "user-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPermissionDenied)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Self() {
	self := &domain.User{UserID: "user-1", Username: "jdoe", Role: domain.RoleOperator}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(self, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", suite.ctx, "user-1", mock.AnythingOfType("time.Time"), "user-1").
		Return(nil).Once()

	err := suite.service.DeleteUser(suite.ctx, "user-1", "user-1")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
