package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/server/response"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		createdUser, apiErr := s.AuthService.SignupUser(&user)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "signup successful", http.StatusCreated, createdUser.Response(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&loginRequest)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

// handleLogout adds the presented access token to the blacklist so it can no
// longer pass authorization.
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		accessToken, ok := token.(string)
		if !ok {
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if err := s.AuthRepository.AddToBlackList(&models.Blacklist{Token: accessToken}); err != nil {
			log.Printf("logout error: %v", err)
			respondAndAbort(c, "logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		response.JSON(c, "user retrieved", http.StatusOK, user.Response(), nil)
	}
}

// handleSetUserType records whether the account is a talent or an
// organization. Social signups land without a type and call this once after
// their first login.
func (s *Server) handleSetUserType() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var request models.UserTypeRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if apiErr := s.AuthService.SetUserType(userID, request.UserType); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "user type updated", http.StatusOK, gin.H{"user_type": request.UserType}, nil)
	}
}

func (s *Server) handleUpdateUserImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		fileHeader, err := c.FormFile("profile_image")
		if err != nil {
			response.JSON(c, "profile_image file required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		imageURL, err := s.MediaService.StoreProfileImage(fileHeader, userID)
		if err != nil {
			var apiErr *errs.Error
			if errors.As(err, &apiErr) {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			log.Printf("profile image upload error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if err := s.AuthRepository.UpdateUserImage(userID, imageURL); err != nil {
			log.Printf("profile image update error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "profile image updated", http.StatusOK, gin.H{"profile_image_url": imageURL}, nil)
	}
}

func (s *Server) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

// generateOAuthState returns a random nonce used to bind a provider redirect
// to the session that started it.
func generateOAuthState() (string, error) {
	stateBytes := make([]byte, 32)
	if _, err := rand.Read(stateBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(stateBytes), nil
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateOAuthState()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if err := s.AuthRepository.CreateOAuthState(&models.OAuthState{State: state}); err != nil {
			log.Printf("oauth state error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, s.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline))
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		if err := s.AuthRepository.ConsumeOAuthState(state); err != nil {
			response.JSON(c, "invalid or expired state", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}

		token, err := s.googleOAuthConfig().Exchange(context.Background(), c.Query("code"))
		if err != nil {
			log.Printf("google token exchange error: %v", err)
			response.JSON(c, "token exchange failed", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		googleUser, err := fetchGoogleUser(token.AccessToken)
		if err != nil {
			log.Printf("google userinfo error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if googleUser.Email == "" {
			response.JSON(c, "email missing from provider response", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		loginResponse, apiErr := s.AuthService.SocialLoginUser(&models.CreateSocialUserParams{
			Email:           googleUser.Email,
			FirstName:       googleUser.GivenName,
			LastName:        googleUser.FamilyName,
			ProfileImageURL: googleUser.Picture,
			AuthProvider:    models.AuthProviderGoogle,
		})
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func fetchGoogleUser(accessToken string) (*models.GoogleAuthResponse, error) {
	req, err := http.NewRequest(http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New("provider returned non-200 status", resp.StatusCode)
	}

	var googleUser models.GoogleAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, err
	}
	return &googleUser, nil
}

// HandleForgotPassword always responds 200, whether or not the email matched
// an account.
func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if apiErr := s.AuthService.SendEmailForPasswordReset(&request); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "if the email exists, a reset link has been sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if apiErr := s.AuthService.ResetPassword(&request, c.Param("token")); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "password reset successful", http.StatusOK, nil, nil)
	}
}
