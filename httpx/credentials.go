package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/oauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/Devvify/dynamic-survey-management/config"
	"github.com/Devvify/dynamic-survey-management/store"
)

func NewBearerServer(s *store.Store, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(s), nil)
}

type credentialsVerifier struct {
	store *store.Store
}

func CredentialsVerifier(s *store.Store) oauth.CredentialsVerifier {
	return &credentialsVerifier{s}
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	user, err := cs.store.UserByUsername(r.Context(), username)
	if err != nil {
		return err
	}

	return bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password))
}

func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	return cs.store.StoreToken(
		context.Background(),
		credential,
		tokenID,
		refreshTokenID,
		time.Now().Add(8760*time.Hour),
	)
}

func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	expiration, err := cs.store.ConsumeToken(context.Background(), credential, tokenID, refreshTokenID)
	if err != nil {
		return errors.New("could not refresh")
	}

	if expiration.Before(time.Now()) {
		return errors.New("could not refresh")
	}
	return nil
}

// AddClaims stamps tokens with the caller's identity and role so handlers
// can trust both without another lookup.
func (cs *credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	user, err := cs.store.UserByUsername(r.Context(), credential)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"user_id": strconv.Itoa(user.ID),
		"roles":   user.Role,
	}, nil
}

func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
