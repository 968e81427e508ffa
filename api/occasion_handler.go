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

	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// OccasionRequest represents the payload for creating or updating an occasion
type OccasionRequest struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	DressCode   string   `json:"dressCode"`
	Notes       string   `json:"notes"`
	SkinTone    string   `json:"skinTone"`
	ClothesList []string `json:"clothesList"`
}

type occasionWithClothes struct {
	models.Occasion
	Clothes []models.Garment `json:"clothes"`
}

func parseClothesList(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid garment ID %q in clothes list", h)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func withClothes(ctx context.Context, occ models.Occasion) occasionWithClothes {
	clothes := []models.Garment{}
	if len(occ.ClothesList) > 0 {
		if found, err := garments.FindByIDs(ctx, occ.ClothesList); err == nil {
			for i := range found {
				found[i].Image = utils.PresignImageURL(ctx, found[i].Image)
			}
			clothes = found
		}
	}
	return occasionWithClothes{Occasion: occ, Clothes: clothes}
}

// OccasionsHandler dispatches GET (list, newest date first) and POST
// (create) for the caller's occasions
func OccasionsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Occasions API]")

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		occs, err := occasions.AllOwned(ctx, user.ID)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, engineUpstream("list occasions", err), "")
			return
		}
		decorated := make([]occasionWithClothes, 0, len(occs))
		for _, occ := range occs {
			decorated = append(decorated, withClothes(ctx, occ))
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"count":     len(decorated),
			"occasions": decorated,
		})

	case http.MethodPost:
		var req OccasionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			utils.RespondError(w, &logMessageBuilder, "Title is required", http.StatusBadRequest)
			return
		}
		if req.Date == "" {
			utils.RespondError(w, &logMessageBuilder, "Date is required", http.StatusBadRequest)
			return
		}
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			date, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				utils.RespondError(w, &logMessageBuilder, "Invalid date format", http.StatusBadRequest)
				return
			}
		}
		clothesList, err := parseClothesList(req.ClothesList)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
			return
		}

		occType := strings.ToLower(strings.TrimSpace(req.Type))
		if occType == "" {
			occType = "other"
		}

		now := time.Now()
		occ := models.Occasion{
			UserID:      user.ID,
			Title:       strings.TrimSpace(req.Title),
			Type:        occType,
			Date:        date,
			Location:    req.Location,
			DressCode:   req.DressCode,
			Notes:       req.Notes,
			SkinTone:    req.SkinTone,
			ClothesList: clothesList,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		saved, err := occasions.Insert(ctx, occ)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, engineUpstream("insert occasion", err), "")
			return
		}

		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created occasion %s", saved.ID.Hex()))
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"message":  "Occasion created successfully",
			"occasion": saved,
		})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// OccasionByIDHandler dispatches GET/PUT/DELETE for a single occasion.
// All lookups are owner-scoped; someone else's occasion reads as 404.
func OccasionByIDHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Occasion By ID API]")

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid occasion ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		occ, err := occasions.FindOwned(ctx, id, user.ID)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, err, "Occasion not found")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"occasion": withClothes(ctx, *occ)})

	case http.MethodPut:
		var req OccasionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		set := bson.M{"updated_at": time.Now()}
		if req.Title != "" {
			set["title"] = strings.TrimSpace(req.Title)
		}
		if req.Type != "" {
			set["type"] = strings.ToLower(strings.TrimSpace(req.Type))
		}
		if req.Date != "" {
			date, err := time.Parse(time.RFC3339, req.Date)
			if err != nil {
				date, err = time.Parse("2006-01-02", req.Date)
				if err != nil {
					utils.RespondError(w, &logMessageBuilder, "Invalid date format", http.StatusBadRequest)
					return
				}
			}
			set["date"] = date
		}
		if req.Location != "" {
			set["location"] = req.Location
		}
		if req.DressCode != "" {
			set["dress_code"] = req.DressCode
		}
		if req.Notes != "" {
			set["notes"] = req.Notes
		}
		if req.SkinTone != "" {
			set["skin_tone"] = req.SkinTone
		}
		if req.ClothesList != nil {
			clothesList, err := parseClothesList(req.ClothesList)
			if err != nil {
				utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
				return
			}
			set["clothes_list"] = clothesList
		}

		occ, err := occasions.UpdateOwned(ctx, id, user.ID, set)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, err, "Occasion not found")
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Occasion updated")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Occasion updated successfully",
			"occasion": occ,
		})

	case http.MethodDelete:
		if err := occasions.DeleteOwned(ctx, id, user.ID); err != nil {
			respondEngineError(w, &logMessageBuilder, err, "Occasion not found")
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Occasion deleted")
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Occasion deleted successfully"})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// OccasionSuggestionsHandler returns ranked partner garments matched to
// one of the caller's occasions
func OccasionSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Occasion Suggestions API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid occasion ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := suggester.SuggestForOccasion(ctx, user.ID, id)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, err, "Occasion not found")
		return
	}

	for i := range result.Suggestions {
		result.Suggestions[i].Image = utils.PresignImageURL(ctx, result.Suggestions[i].Image)
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returning %d suggestions", len(result.Suggestions)))
	utils.RespondJSON(w, http.StatusOK, result)
}
