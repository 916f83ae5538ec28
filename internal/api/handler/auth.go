package handler

import (
	"errors"
	"net/http"
	"time"

	"gocart/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

// generateJWT issues a token binding a user id to a connection role.
func (h *Handler) generateJWT(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour * 72).Unix(),
		"iss":  "gocart-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validateToken checks the signature and returns the user id and role claims.
func (h *Handler) validateToken(tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}

	userID, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if userID == "" {
		return "", "", errors.New("missing subject")
	}
	if role == "" {
		role = models.RoleUnspecified
	}
	return userID, role, nil
}

// GetToken issues a tracking token. The caller picks its role (customer or
// agent, anything else becomes unspecified) and may carry its own user id;
// session issuance proper lives in the external auth service, this endpoint
// only mints tokens for the tracking socket.
func (h *Handler) GetToken(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = uuid.New().String()
	}

	role := c.Query("role")
	if role != models.RoleCustomer && role != models.RoleAgent {
		role = models.RoleUnspecified
	}

	token, err := h.generateJWT(userID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID, "role": role})
}
