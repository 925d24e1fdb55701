package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	UserTypeTalent       = "talent"
	UserTypeOrganization = "organization"

	AuthProviderEmail    = "email"
	AuthProviderGoogle   = "google"
	AuthProviderFacebook = "facebook"
)

// User represents an account on the platform, either talent or organization.
type User struct {
	Model
	FirstName       string `json:"first_name" binding:"required,min=2" conform:"trim"`
	LastName        string `json:"last_name" binding:"required,min=2" conform:"trim"`
	Email           string `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Password        string `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword  string `json:"-"`
	AuthProvider    string `json:"auth_provider" gorm:"default:email"`
	UserType        string `json:"user_type"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	IsSocial        bool   `json:"-"`
	ResetToken      string `json:"-"`
}

func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// DisplayName is what the messaging UI shows for a counterpart.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

func ValidPassword(password string) error {
	passwordValidator := goval.New(
		goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")),
	)
	return passwordValidator.Validate(password)
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// CreateSocialUserParams carries the fields an OAuth provider gives us.
type CreateSocialUserParams struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	AuthProvider    string `json:"auth_provider"`
}

type UserResponse struct {
	ID              uint   `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	UserType        string `json:"user_type"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		UserType:        u.UserType,
		ProfileImageURL: u.ProfileImageURL,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserTypeRequest struct {
	UserType string `json:"user_type" binding:"required,oneof=talent organization"`
}

type GoogleAuthResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type FacebookAuthResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Blacklist holds access tokens invalidated by logout.
type Blacklist struct {
	Model
	Token string `gorm:"index"`
}

// OAuthState stores the anti-forgery state nonce handed to a provider.
type OAuthState struct {
	Model
	State string `gorm:"unique;not null"`
}
