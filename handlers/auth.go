package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/openfightdb/fighterapi/middleware"
	"github.com/openfightdb/fighterapi/models"
)

// Passwords are truncated to this many bytes before hashing.
const maxPasswordLen = 30

type registerRequest struct {
	Email    string `json:"email" form:"email" query:"email" validate:"required,email"`
	Password string `json:"password" form:"password" query:"password" validate:"required,min=3"`
}

type loginRequest struct {
	// OAuth2 password-grant form: username carries the email.
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates a user with a bcrypt-hashed password. Failures are logged
// and reported as a boolean rather than propagated.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	password := req.Password
	if len(password) > maxPasswordLen {
		password = password[:maxPasswordLen]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("hash password", zap.Error(err))
		return c.JSON(http.StatusCreated, false)
	}

	user := &models.User{
		Email:          strings.TrimSpace(req.Email),
		HashedPassword: string(hash),
	}
	if _, err := h.db.NewInsert().Model(user).Exec(c.Request().Context()); err != nil {
		zap.L().Error("create user", zap.Error(err))
		return c.JSON(http.StatusCreated, false)
	}

	return c.JSON(http.StatusCreated, true)
}

// Users lists all registered users. Password hashes never serialize.
func (h *Handler) Users(c echo.Context) error {
	var users []models.User
	if err := h.db.NewSelect().Model(&users).Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// Token verifies credentials and issues a signed access token. Unknown email
// and wrong password are indistinguishable in the response.
func (h *Handler) Token(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &models.User{}
	err := h.db.NewSelect().Model(user).
		Where("email = ?", strings.TrimSpace(req.Username)).
		Scan(c.Request().Context())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			zap.L().Error("select user", zap.Error(err))
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	password := req.Password
	if len(password) > maxPasswordLen {
		password = password[:maxPasswordLen]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"access_token": tokenString,
		"token_type":   "bearer",
	})
}

// issueToken signs an HS256 token carrying sub (email), id, and expiration.
func (h *Handler) issueToken(user *models.User) (string, error) {
	claims := &mw.Claims{
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtKey)
}

// Me echoes the identity claims resolved by the JWT middleware.
func (h *Handler) Me(c echo.Context) error {
	email, _ := c.Get("email").(string)
	userID, _ := c.Get("user_id").(int)
	return c.JSON(http.StatusOK, map[string]any{
		"email": email,
		"id":    userID,
	})
}
