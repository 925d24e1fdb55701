package services

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"

	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/config"
	"github.com/talentbridgehq/talentbridge/db"
	apiError "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/mailingservices"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	SignupUser(user *models.User) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	SocialLoginUser(params *models.CreateSocialUserParams) (*models.LoginResponse, *apiError.Error)
	SetUserType(userID uint, userType string) *apiError.Error
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     *mailingservices.Mailgun
}

func NewAuthService(authRepo db.AuthRepository, mail *mailingservices.Mailgun, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, *apiError.Error) {
	if err := models.ValidateWhiteSpaces(user); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	if err := models.ValidPassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		return nil, apiError.New("email already in use", http.StatusConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""
	user.AuthProvider = models.AuthProviderEmail

	created, err := s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	return created, nil
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	user, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("LoginUser lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if user.IsSocial {
		return nil, apiError.New("account uses social login", http.StatusUnauthorized)
	}
	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	return s.buildLoginResponse(user)
}

// SocialLoginUser finds or creates the account an OAuth provider vouched for
// and returns a token pair, the same shape password login produces.
func (s *authService) SocialLoginUser(params *models.CreateSocialUserParams) (*models.LoginResponse, *apiError.Error) {
	if params.Email == "" {
		return nil, apiError.New("social profile has no email", http.StatusBadRequest)
	}

	user, err := s.authRepo.FindUserByEmail(params.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SocialLoginUser lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		user, err = s.authRepo.CreateSocialUser(params)
		if err != nil {
			log.Printf("SocialLoginUser create error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}

	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.ID, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token pair: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: user.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) SetUserType(userID uint, userType string) *apiError.Error {
	if userType != models.UserTypeTalent && userType != models.UserTypeOrganization {
		return apiError.New("invalid user type", http.StatusBadRequest)
	}
	if err := s.authRepo.UpdateUserType(userID, userType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("SetUserType error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	user, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// do not reveal whether an email is registered
			return nil
		}
		log.Printf("password reset lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	token, err := generateResetToken()
	if err != nil {
		log.Printf("error generating reset token: %v", err)
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.SetResetToken(user.Email, token); err != nil {
		log.Printf("error storing reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	resetLink := s.Config.BaseUrl + "/password/reset/" + token
	if err := s.mail.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		log.Printf("error sending reset email: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidPassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	user, err := s.authRepo.FindUserByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
		}
		log.Printf("reset token lookup error: %v", err)
		return apiError.ErrInternalServerError
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("error hashing password: %v", err)
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.UpdatePassword(string(hashedPassword), user.Email); err != nil {
		log.Printf("error updating password: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
