package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	errs "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/server/response"
	"golang.org/x/oauth2"
	facebookOAuth "golang.org/x/oauth2/facebook"
)

func (s *Server) facebookOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.FacebookAppId,
		ClientSecret: s.Config.FacebookAppSecret,
		RedirectURL:  s.Config.FacebookRedirectURL,
		Endpoint:     facebookOAuth.Endpoint,
		Scopes:       []string{"email", "public_profile"},
	}
}

func (s *Server) handleFBLogin() gin.HandlerFunc {
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

		c.Redirect(http.StatusTemporaryRedirect, s.facebookOAuthConfig().AuthCodeURL(state))
	}
}

func (s *Server) handleFBCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		if err := s.AuthRepository.ConsumeOAuthState(state); err != nil {
			response.JSON(c, "invalid or expired state", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}

		token, err := s.facebookOAuthConfig().Exchange(context.Background(), c.Query("code"))
		if err != nil {
			log.Printf("facebook token exchange error: %v", err)
			response.JSON(c, "token exchange failed", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		fbUser, err := fetchFacebookUser(token.AccessToken)
		if err != nil {
			log.Printf("facebook userinfo error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if fbUser.Email == "" {
			response.JSON(c, "email missing from provider response", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		loginResponse, apiErr := s.AuthService.SocialLoginUser(&models.CreateSocialUserParams{
			Email:        fbUser.Email,
			FirstName:    fbUser.FirstName,
			LastName:     fbUser.LastName,
			AuthProvider: models.AuthProviderFacebook,
		})
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

func fetchFacebookUser(accessToken string) (*models.FacebookAuthResponse, error) {
	endpoint := "https://graph.facebook.com/me?fields=id,email,first_name,last_name&access_token=" + url.QueryEscape(accessToken)
	resp, err := http.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New("provider returned non-200 status", resp.StatusCode)
	}

	var fbUser models.FacebookAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&fbUser); err != nil {
		return nil, err
	}
	return &fbUser, nil
}
