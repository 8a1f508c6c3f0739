package rest

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util"
	"github.com/opencivic/civic-api/util/values"
	"golang.org/x/crypto/bcrypt"
)

type TokenClaims struct {
	UserID string `json:"sub"`
	Type   string `json:"typ"`
	Exp    int64  `json:"exp"`
}

// Simplified token creation
func (api *API) createToken(id string) (string, time.Time, error) {
	expTime, err := time.ParseDuration(api.Config.JwtExpires)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(expTime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
		"typ": "access",
	})

	tokenString, err := token.SignedString([]byte(api.Config.JwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

func (api *API) RegisterUser(ctx context.Context, req model.RegisterRequest) (model.LoginResponse, string, string, error) {
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidateStruct(req); err != nil {
		return model.LoginResponse{}, values.BadRequestBody, "Invalid registration details", err
	}

	exists, err := api.EmailExists(ctx, req.Email)
	if err != nil {
		return model.LoginResponse{}, values.Error, "Error checking email", err
	}

	if exists {
		return model.LoginResponse{}, values.Conflict, "Email already exists", nil
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return model.LoginResponse{}, values.Error, "Error hashing password", err
	}

	user := model.User{
		ID:           util.GenerateUUID(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         values.RoleCitizen,
		PasswordHash: &hash,
		AuthProvider: "email",
	}

	if err := api.CreateNewUserRepo(ctx, user); err != nil {
		if err == ErrEmailTaken {
			return model.LoginResponse{}, values.Conflict, "Email already exists", nil
		}
		return model.LoginResponse{}, values.Error, "Error creating new user", err
	}

	token, _, err := api.createToken(user.ID.String())
	if err != nil {
		return model.LoginResponse{}, values.Error, values.SystemErr, err
	}

	return model.LoginResponse{User: &user, Token: token}, values.Created, "User created successfully", nil
}

func (api *API) LoginUser(ctx context.Context, req model.LoginRequest) (model.LoginResponse, string, string, error) {
	req.Email = strings.TrimSpace(req.Email)

	if err := util.ValidEmail(req.Email); err != nil {
		return model.LoginResponse{}, values.BadRequestBody, "Invalid email address provided", err
	}

	user, err := api.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return model.LoginResponse{}, values.NotAuthorised, "Invalid email or password", err
	}

	if user.PasswordHash == nil {
		return model.LoginResponse{}, values.NotAuthorised, "Invalid email or password", nil
	}
	if err := checkPassword(*user.PasswordHash, req.Password); err != nil {
		return model.LoginResponse{}, values.NotAuthorised, "Invalid email or password", err
	}

	token, _, err := api.createToken(user.ID.String())
	if err != nil {
		return model.LoginResponse{}, values.Error, values.SystemErr, err
	}

	user.PasswordHash = nil
	return model.LoginResponse{User: &user, Token: token}, values.Success, "Login successful", nil
}
