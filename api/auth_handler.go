package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// RegisterRequest represents the payload for account registration
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	SkinTone    string `json:"skinTone"`
}

// LoginRequest represents the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles account registration.
// Stylers are auto-approved. The first admin claims an atomic bootstrap
// slot and is auto-approved; later admins and all partners wait for
// approval by an existing admin.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Register API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Role == "" {
		utils.RespondError(w, &logMessageBuilder, "Email, password, and role are required", http.StatusBadRequest)
		return
	}
	switch req.Role {
	case models.RoleStyler, models.RolePartner, models.RoleAdmin:
	default:
		utils.RespondError(w, &logMessageBuilder, "Invalid role. Must be one of: styler, partner, admin", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	collection := utils.GetCollection(config.DatabaseName, "users")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		utils.RespondError(w, &logMessageBuilder, "User with this email already exists", http.StatusBadRequest)
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondError(w, &logMessageBuilder, "Database error checking user", http.StatusInternalServerError)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	userID := primitive.NewObjectID()
	isApproved := false

	switch req.Role {
	case models.RoleStyler:
		isApproved = true
	case models.RoleAdmin:
		claimed, err := bootstrap.ClaimFirstAdmin(ctx, userID)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Database error claiming admin slot", http.StatusInternalServerError)
			return
		}
		if claimed {
			utils.AddToLogMessage(&logMessageBuilder, "First admin slot claimed")
			isApproved = true
		}
	}

	now := time.Now()
	newUser := models.User{
		ID:         userID,
		Email:      email,
		Password:   string(hashed),
		Role:       req.Role,
		IsApproved: isApproved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := collection.InsertOne(ctx, newUser); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to create user", http.StatusInternalServerError)
		return
	}

	name := req.FullName
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	// Role-specific record shares the user's ID.
	switch req.Role {
	case models.RoleStyler:
		styler := models.Styler{
			ID:        userID,
			Name:      name,
			Gender:    req.Gender,
			SkinTone:  req.SkinTone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.DateOfBirth != "" {
			if dob, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
				styler.DateOfBirth = dob
			}
		}
		if err := stylers.Insert(ctx, styler); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Failed to create styler profile", http.StatusInternalServerError)
			return
		}
	case models.RolePartner:
		partner := models.Partner{
			ID:        userID,
			Name:      name,
			Email:     email,
			Phone:     req.Phone,
			Location:  req.Address,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := partners.Insert(ctx, partner); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Failed to create partner profile", http.StatusInternalServerError)
			return
		}
	}

	// Acknowledgement email is best-effort; registration already succeeded.
	if emailErr := utils.SendEmail(name, email, "Welcome to StyleWise",
		"Your account has been registered.",
		"<p>Your account has been registered.</p>"); emailErr != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send email: %v", emailErr))
	}

	message := "User registered successfully. Waiting for admin approval."
	if isApproved {
		if req.Role == models.RoleAdmin {
			message = "Admin registered and approved successfully. You can now log in."
		} else {
			message = "Styler registered successfully. You can now log in."
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Registered %s (%s)", email, req.Role))
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"message": message})
}

// LoginHandler handles login for approved accounts
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Email and password are required", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(config.DatabaseName, "users")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		} else {
			utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		}
		return
	}

	if !user.IsApproved {
		utils.RespondError(w, &logMessageBuilder, "Account pending approval. Please wait for admin approval.", http.StatusForbidden)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	// Record the login; the rollup analytics read these fields.
	_, err = collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$inc":  bson.M{"login_count": 1},
		"$push": bson.M{"login_history": time.Now()},
	})
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to record login: %v", err))
	} else {
		user.LoginCount++
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Login successful")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// LogoutHandler blacklists the presented token until it expires
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Logout API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		utils.RespondError(w, &logMessageBuilder, "No authorization token provided", http.StatusBadRequest)
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		utils.RespondError(w, &logMessageBuilder, "No token provided", http.StatusBadRequest)
		return
	}

	utils.BlacklistToken(token, utils.TokenExpiry(token))

	utils.AddToLogMessage(&logMessageBuilder, "Token blacklisted")
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ProfileHandler returns the authenticated account merged with its
// role-specific record
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, nil, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response := map[string]interface{}{"user": user}
	switch user.Role {
	case models.RoleStyler:
		if styler, err := stylers.FindStyler(ctx, user.ID); err == nil && styler != nil {
			response["styler"] = styler
			if age := styler.Age(); age >= 0 {
				response["age"] = age
			}
		}
	case models.RolePartner:
		if partner, err := partners.FindByID(ctx, user.ID); err == nil {
			response["partner"] = partner
		}
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

// ApproveUserHandler approves a pending partner or admin (admin only)
func ApproveUserHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Approve User API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid user ID", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(config.DatabaseName, "users")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		return
	}

	if user.Role == models.RoleStyler {
		utils.RespondError(w, &logMessageBuilder, "Stylers are automatically approved and don't require manual approval.", http.StatusBadRequest)
		return
	}
	if user.IsApproved {
		utils.RespondError(w, &logMessageBuilder, "User is already approved", http.StatusBadRequest)
		return
	}

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"is_approved": true, "updated_at": time.Now()}}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to approve user", http.StatusInternalServerError)
		return
	}
	user.IsApproved = true

	if user.Role == models.RolePartner {
		if partner, err := partners.Update(ctx, userID, bson.M{"is_approved": true, "updated_at": time.Now()}); err == nil {
			if emailErr := utils.SendEmail(partner.Name, partner.Email, "Your partner account is approved",
				"Your StyleWise partner account has been approved. You can now log in and list garments.",
				"<p>Your StyleWise partner account has been approved. You can now log in and list garments.</p>"); emailErr != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send email: %v", emailErr))
			}
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, "User approved")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User approved successfully",
		"user":    user,
	})
}

// RejectUserHandler deletes a pending account (admin only)
func RejectUserHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Reject User API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid user ID", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(config.DatabaseName, "users")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, &logMessageBuilder, "User not found", http.StatusNotFound)
		return
	}
	if user.IsApproved {
		utils.RespondError(w, &logMessageBuilder, "Cannot reject an already approved user", http.StatusBadRequest)
		return
	}

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to reject user", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "User rejected and removed")
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "User rejected and removed successfully"})
}

// PendingUsersHandler lists partners and admins waiting for approval
// (admin only)
func PendingUsersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondError(w, nil, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	collection := utils.GetCollection(config.DatabaseName, "users")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"is_approved": false,
		"role":        bson.M{"$in": []string{models.RolePartner, models.RoleAdmin}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, nil, "Failed to fetch pending users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondError(w, nil, "Failed to decode pending users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}
