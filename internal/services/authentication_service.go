package services

import (
	"time"

	"syncBoard/configs"
	"syncBoard/internal/errs"
	"syncBoard/internal/models"
	"syncBoard/internal/utils"
	"syncBoard/internal/validators"
)

// UserStore is the slice of the authentication repository this service
// consumes.
type UserStore interface {
	CreateUser(user *models.User) (*models.User, []error)
	CheckIfUserExists(email string) *models.User
	Login(login *models.LoginRequestBody) (*models.User, []error)
	GetUserByID(id uint) (*models.User, error)
	SearchUsers(query string, page, size int) ([]models.User, error)
	SetOnlineStatus(userId uint, online bool) error
}

type AuthenticationService struct {
	authRepo UserStore
	config   *configs.Config
}

func NewAuthenticationService(
	authRepo UserStore,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo: authRepo,
		config:   config,
	}
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	if as.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	return as.authRepo.CreateUser(user)
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, loginErrs := as.authRepo.Login(loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		return nil, errors
	}

	expiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		utils.GetJwtKey(),
		expiration,
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user,
		Token: token,
	}, nil
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.CheckIfUserExists(email) != nil
}

func (as *AuthenticationService) GetProfile(userId uint) (*models.UserResponse, []error) {
	user, err := as.authRepo.GetUserByID(userId)
	if err != nil {
		return nil, []error{err}
	}
	return user.ToUserResponse(), nil
}

func (as *AuthenticationService) SearchUsers(query string, page, size int) ([]*models.UserResponse, []error) {
	if query == "" {
		return nil, []error{errs.ErrInvalidParams}
	}
	users, err := as.authRepo.SearchUsers(query, page, size)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToUserResponse())
	}
	return responses, nil
}

func (as *AuthenticationService) SetOnlineStatus(userId uint, online bool) error {
	return as.authRepo.SetOnlineStatus(userId, online)
}
