package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user attached by AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	return user, nil
}

// AuthMiddleware validates the Bearer token and loads the account into the
// request context.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondError(w, nil, "Authorization token required", http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if utils.IsTokenBlacklisted(token) {
			utils.RespondError(w, nil, "Token has been logged out", http.StatusUnauthorized)
			return
		}

		userIDHex, err := utils.ValidateToken(token)
		if err != nil {
			utils.RespondError(w, nil, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			utils.RespondError(w, nil, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		collection := utils.GetCollection(config.DatabaseName, "users")
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var user models.User
		if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			utils.RespondError(w, nil, "User not found", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, &user)))
	}
}

// RequireRole restricts a handler to the given roles. Must be wrapped by
// AuthMiddleware.
func RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r.Context())
			if err != nil {
				utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next(w, r)
					return
				}
			}
			utils.RespondError(w, nil, fmt.Sprintf("%s role required", strings.Join(roles, " or ")), http.StatusForbidden)
		}
	}
}
