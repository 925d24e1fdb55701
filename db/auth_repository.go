package db

import (
	"log"

	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	CreateSocialUser(params *models.CreateSocialUserParams) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdateUserType(userID uint, userType string) error
	UpdateUserImage(userID uint, imageURL string) error
	UpdatePassword(password string, email string) error
	SetResetToken(email string, token string) error
	FindUserByResetToken(token string) (*models.User, error)
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	CreateOAuthState(state *models.OAuthState) error
	ConsumeOAuthState(state string) error
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create user")
	}
	return user, nil
}

func (a *authRepo) CreateSocialUser(params *models.CreateSocialUserParams) (*models.User, error) {
	user := &models.User{
		Email:           params.Email,
		FirstName:       params.FirstName,
		LastName:        params.LastName,
		ProfileImageURL: params.ProfileImageURL,
		AuthProvider:    params.AuthProvider,
		IsSocial:        true,
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "unable to create social user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) UpdateUserType(userID uint, userType string) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("user_type", userType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) UpdateUserImage(userID uint, imageURL string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Update("profile_image_url", imageURL).Error
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	result := a.DB.Model(&models.User{}).Where("email = ?", email).
		Updates(map[string]interface{}{"hashed_password": password, "reset_token": ""})
	if result.Error != nil {
		return errors.Wrap(result.Error, "unable to update password")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) SetResetToken(email string, token string) error {
	result := a.DB.Model(&models.User{}).Where("email = ?", email).Update("reset_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) FindUserByResetToken(token string) (*models.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	err := a.DB.Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("blacklist lookup error: %v", err)
		return false
	}
	return count > 0
}

func (a *authRepo) CreateOAuthState(state *models.OAuthState) error {
	return a.DB.Create(state).Error
}

// ConsumeOAuthState verifies a provider callback state and removes it so it
// cannot be replayed.
func (a *authRepo) ConsumeOAuthState(state string) error {
	result := a.DB.Where("state = ?", state).Delete(&models.OAuthState{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("invalid oauth state")
	}
	return nil
}
