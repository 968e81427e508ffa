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

	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// PartnerRequest represents the payload for updating a partner record
type PartnerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// ListPartnersHandler lists approved partners with optional name search
func ListPartnersHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[List Partners API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	filter := bson.M{}
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		filter["name"] = bson.M{"$regex": name, "$options": "i"}
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		fmt.Sscanf(p, "%d", &page)
		if page < 1 {
			page = 1
		}
	}
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		fmt.Sscanf(l, "%d", &limit)
		if limit < 1 {
			limit = 20
		}
		if limit > 50 {
			limit = 50
		}
	}

	found, total, err := partners.List(ctx, filter, int64((page-1)*limit), int64(limit))
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("list partners", err), "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"partners": found,
		"meta": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// PartnerByIDHandler dispatches GET (public), PUT and DELETE (admin or
// the partner itself) for a single partner
func PartnerByIDHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Partner By ID API]")

	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid partner ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		partner, err := partners.FindByID(ctx, id)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondError(w, &logMessageBuilder, "Partner not found", http.StatusNotFound)
			} else {
				respondEngineError(w, &logMessageBuilder, engineUpstream("find partner", err), "")
			}
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"partner": partner})

	case http.MethodPut:
		user, err := UserFromContext(r.Context())
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if user.Role != models.RoleAdmin && user.ID != id {
			utils.RespondError(w, &logMessageBuilder, "You can only update your own partner profile", http.StatusForbidden)
			return
		}

		var req PartnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		set := bson.M{"updated_at": time.Now()}
		if req.Name != "" {
			set["name"] = req.Name
		}
		if req.Phone != "" {
			set["phone"] = req.Phone
		}
		if req.Location != "" {
			set["location"] = req.Location
		}

		partner, err := partners.Update(ctx, id, set)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondError(w, &logMessageBuilder, "Partner not found", http.StatusNotFound)
			} else {
				respondEngineError(w, &logMessageBuilder, engineUpstream("update partner", err), "")
			}
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Partner updated")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Partner updated successfully",
			"partner": partner,
		})

	case http.MethodDelete:
		user, err := UserFromContext(r.Context())
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if user.Role != models.RoleAdmin {
			utils.RespondError(w, &logMessageBuilder, "admin role required", http.StatusForbidden)
			return
		}

		if err := partners.Delete(ctx, id); err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondError(w, &logMessageBuilder, "Partner not found", http.StatusNotFound)
			} else {
				respondEngineError(w, &logMessageBuilder, engineUpstream("delete partner", err), "")
			}
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Partner deleted")
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Partner deleted successfully"})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
