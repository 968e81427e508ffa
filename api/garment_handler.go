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

	"github.com/stylewise/wardrobe-api/engine"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// GarmentRequest represents the payload for creating or updating a garment
type GarmentRequest struct {
	Name              string   `json:"name"`
	Image             string   `json:"image"`
	Color             string   `json:"color"`
	Category          string   `json:"category"`
	Brand             string   `json:"brand"`
	Description       string   `json:"description"`
	Size              string   `json:"size"`
	Occasion          []string `json:"occasion"`
	SuitableSkinTones []string `json:"suitableSkinTones"`
	Gender            string   `json:"gender"`
	Price             float64  `json:"price"`
	Stock             int      `json:"stock"`
	Visibility        string   `json:"visibility"`
}

type garmentWithPartner struct {
	models.Garment
	Partner *models.Partner `json:"partner,omitempty"`
}

// pageCount returns the number of pages needed for total items at the
// given page size. The caller guarantees limit >= 1.
func pageCount(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

func listingQueryFrom(r *http.Request) engine.ListingQuery {
	q := r.URL.Query()
	return engine.ListingQuery{
		Search:   q.Get("search"),
		Color:    q.Get("color"),
		Category: q.Get("category"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
	}
}

// attachPartners decorates garments with their partner's contact details
// and resolves image keys to presigned URLs.
func attachPartners(ctx context.Context, items []models.Garment) []garmentWithPartner {
	idSet := map[primitive.ObjectID]struct{}{}
	for _, g := range items {
		if g.OwnerKind == models.OwnerKindPartner && !g.OwnerID.IsZero() {
			idSet[g.OwnerID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	byID := map[primitive.ObjectID]models.Partner{}
	if found, err := partners.FindByIDs(ctx, ids); err == nil {
		for _, p := range found {
			byID[p.ID] = p
		}
	}

	out := make([]garmentWithPartner, 0, len(items))
	for _, g := range items {
		g.Image = utils.PresignImageURL(ctx, g.Image)
		item := garmentWithPartner{Garment: g}
		if p, ok := byID[g.OwnerID]; ok {
			partner := p
			item.Partner = &partner
		}
		out = append(out, item)
	}
	return out
}

// ListGarmentsHandler lists public partner garments with search, filter,
// sort, and pagination. GET is public; POST creates a garment for the
// authenticated owner (handled by the auth-wrapped route).
func ListGarmentsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[List Garments API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	filter := engine.BuildListingFilter(listingQueryFrom(r), bson.M{
		"visibility": models.VisibilityPublic,
		"owner_kind": models.OwnerKindPartner,
	})
	page := engine.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	sort := engine.ParseSort(r.URL.Query().Get("sort"))

	total, err := garments.Count(ctx, filter)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count garments", err), "")
		return
	}

	items, err := garments.Find(ctx, filter, sort, page.Skip(), int64(page.Limit))
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("find garments", err), "")
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returning %d of %d garments", len(items), total))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"garments": attachPartners(ctx, items),
		"meta": map[string]interface{}{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
			"pages": pageCount(total, page.Limit),
		},
	})
}

// CreateGarmentHandler creates a garment owned by the caller. Stylers get
// private wardrobe items, partners and admins get public listings.
func CreateGarmentHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Garment API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req GarmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ownerKind := models.OwnerKindPartner
	visibility := models.VisibilityPublic
	if user.Role == models.RoleStyler {
		ownerKind = models.OwnerKindStyler
		visibility = models.VisibilityPrivate
		if len(req.Occasion) == 0 {
			req.Occasion = []string{"casual"}
		}
	}
	if req.Visibility != "" {
		visibility = req.Visibility
	}

	now := time.Now()
	garment := models.Garment{
		Name:              req.Name,
		Image:             req.Image,
		Color:             strings.ToLower(strings.TrimSpace(req.Color)),
		Category:          strings.ToLower(strings.TrimSpace(req.Category)),
		Brand:             req.Brand,
		Description:       req.Description,
		Size:              req.Size,
		Occasion:          req.Occasion,
		SuitableSkinTones: req.SuitableSkinTones,
		Gender:            req.Gender,
		Price:             req.Price,
		Stock:             req.Stock,
		OwnerKind:         ownerKind,
		OwnerID:           user.ID,
		Visibility:        visibility,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := garment.Validate(); err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	saved, err := garments.Insert(ctx, garment)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("insert garment", err), "")
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created garment %s", saved.ID.Hex()))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Garment created successfully",
		"garment": saved,
	})
}

// MyGarmentsHandler lists the caller's own garments with the same listing
// filters as the public catalog
func MyGarmentsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[My Garments API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	filter := engine.BuildListingFilter(listingQueryFrom(r), bson.M{"owner_id": user.ID})
	page := engine.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	sort := engine.ParseSort(r.URL.Query().Get("sort"))

	total, err := garments.Count(ctx, filter)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count garments", err), "")
		return
	}

	items, err := garments.Find(ctx, filter, sort, page.Skip(), int64(page.Limit))
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("find garments", err), "")
		return
	}
	for i := range items {
		items[i].Image = utils.PresignImageURL(ctx, items[i].Image)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"garments": items,
		"meta": map[string]interface{}{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
			"pages": pageCount(total, page.Limit),
		},
	})
}

// canAccessGarment reports whether a user may read a garment. Private
// garments are visible only to their owner and to admins.
func canAccessGarment(user *models.User, g *models.Garment) bool {
	if g.Visibility == models.VisibilityPublic {
		return true
	}
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || g.OwnerID == user.ID
}

// GarmentByIDHandler dispatches GET/PUT/DELETE for a single garment
func GarmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Garment By ID API]")

	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid garment ID", http.StatusBadRequest)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	garment, err := garments.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Garment not found", http.StatusNotFound)
		} else {
			respondEngineError(w, &logMessageBuilder, engineUpstream("find garment", err), "")
		}
		return
	}

	// Hiding inaccessible garments behind 404 keeps existence private.
	if !canAccessGarment(user, garment) {
		utils.RespondError(w, &logMessageBuilder, "Garment not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		garment.Image = utils.PresignImageURL(ctx, garment.Image)
		decorated := attachPartners(ctx, []models.Garment{*garment})
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"garment": decorated[0]})

	case http.MethodPut:
		if user.Role != models.RoleAdmin && garment.OwnerID != user.ID {
			utils.RespondError(w, &logMessageBuilder, "You can only update your own garments", http.StatusForbidden)
			return
		}
		var req GarmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		updated := *garment
		if req.Name != "" {
			updated.Name = req.Name
		}
		if req.Image != "" {
			updated.Image = req.Image
		}
		if req.Color != "" {
			updated.Color = strings.ToLower(strings.TrimSpace(req.Color))
		}
		if req.Category != "" {
			updated.Category = strings.ToLower(strings.TrimSpace(req.Category))
		}
		if req.Brand != "" {
			updated.Brand = req.Brand
		}
		if req.Description != "" {
			updated.Description = req.Description
		}
		if req.Size != "" {
			updated.Size = req.Size
		}
		if len(req.Occasion) > 0 {
			updated.Occasion = req.Occasion
		}
		if req.SuitableSkinTones != nil {
			updated.SuitableSkinTones = req.SuitableSkinTones
		}
		if req.Gender != "" {
			updated.Gender = req.Gender
		}
		if req.Price > 0 {
			updated.Price = req.Price
		}
		if req.Stock > 0 {
			updated.Stock = req.Stock
		}
		if req.Visibility != "" {
			updated.Visibility = req.Visibility
		}
		updated.UpdatedAt = time.Now()

		if err := updated.Validate(); err != nil {
			utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
			return
		}

		set := bson.M{
			"name":                updated.Name,
			"image":               updated.Image,
			"color":               updated.Color,
			"category":            updated.Category,
			"brand":               updated.Brand,
			"description":         updated.Description,
			"size":                updated.Size,
			"occasion":            updated.Occasion,
			"suitable_skin_tones": updated.SuitableSkinTones,
			"gender":              updated.Gender,
			"price":               updated.Price,
			"stock":               updated.Stock,
			"visibility":          updated.Visibility,
			"updated_at":          updated.UpdatedAt,
		}
		saved, err := garments.Update(ctx, id, set)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, engineUpstream("update garment", err), "")
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Garment updated")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Garment updated successfully",
			"garment": saved,
		})

	case http.MethodDelete:
		if user.Role != models.RoleAdmin && garment.OwnerID != user.ID {
			utils.RespondError(w, &logMessageBuilder, "You can only delete your own garments", http.StatusForbidden)
			return
		}
		if err := garments.Delete(ctx, id); err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondError(w, &logMessageBuilder, "Garment not found", http.StatusNotFound)
			} else {
				respondEngineError(w, &logMessageBuilder, engineUpstream("delete garment", err), "")
			}
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Garment deleted")
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Garment deleted successfully"})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// BrowseSuggestionsHandler lets a styler browse the public catalog with
// pagination, newest first
func BrowseSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Browse Suggestions API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	filter := engine.BuildListingFilter(listingQueryFrom(r), bson.M{
		"visibility": models.VisibilityPublic,
		"owner_kind": models.OwnerKindPartner,
	})
	page := engine.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	total, err := garments.Count(ctx, filter)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count garments", err), "")
		return
	}

	items, err := garments.Find(ctx, filter,
		bson.D{{Key: "created_at", Value: -1}}, page.Skip(), int64(page.Limit))
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("find garments", err), "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"garments": attachPartners(ctx, items),
		"meta": map[string]interface{}{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
			"pages": pageCount(total, page.Limit),
		},
	})
}
