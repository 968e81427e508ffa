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

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// WearRequest represents the payload for recording a wear event
type WearRequest struct {
	DressID  string `json:"dressId"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// RecordWearHandler appends one wear event to the ledger
func RecordWearHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Record Wear API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req WearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	dressID, err := primitive.ObjectIDFromHex(req.DressID)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid dress ID", http.StatusBadRequest)
		return
	}

	var when time.Time
	if req.Date != "" {
		when, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			when, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				utils.RespondError(w, &logMessageBuilder, "Invalid date format", http.StatusBadRequest)
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	event, err := ledger.Record(ctx, dressID, user.ID,
		strings.ToLower(strings.TrimSpace(req.Color)),
		strings.ToLower(strings.TrimSpace(req.Category)), when)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, err, "")
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Recorded wear for %s", dressID.Hex()))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Wear recorded successfully",
		"event":   event,
	})
}

// ClosetHealthHandler returns the caller's wardrobe health report
func ClosetHealthHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Closet Health API]")

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

	report, err := healthScorer.ClosetHealth(ctx, user.ID)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, err, "")
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Closet health score %d", report.Score))
	utils.RespondJSON(w, http.StatusOK, report)
}

type weekBucket struct {
	Week  string `json:"week"`
	Count int64  `json:"count"`
}

// registrationTrend counts registrations per week over the last four
// weeks, oldest week first. A failed count aborts the whole trend rather
// than reporting a fabricated zero.
func registrationTrend(ctx context.Context, now time.Time, count func(ctx context.Context, start, end time.Time) (int64, error)) ([]weekBucket, error) {
	trend := make([]weekBucket, 0, 4)
	for i := 3; i >= 0; i-- {
		end := now.AddDate(0, 0, -7*i)
		start := end.AddDate(0, 0, -7)
		c, err := count(ctx, start, end)
		if err != nil {
			return nil, err
		}
		trend = append(trend, weekBucket{
			Week:  start.Format("2006-01-02"),
			Count: c,
		})
	}
	return trend, nil
}

// sumAggregate runs a single-group $sum pipeline and returns the total,
// or zero when no documents matched.
func sumAggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) (float64, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// AdminAnalyticsHandler reports platform-wide totals, revenue, login
// volume and a four-week registration trend (admin only)
func AdminAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Admin Analytics API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	users := utils.GetCollection(config.DatabaseName, "users")
	payments := utils.GetCollection(config.DatabaseName, "payments")
	garmentsColl := utils.GetCollection(config.DatabaseName, "garments")
	partnersColl := utils.GetCollection(config.DatabaseName, "partners")

	totalUsers, err := users.CountDocuments(ctx, bson.M{})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count users", err), "")
		return
	}
	totalStylers, err := users.CountDocuments(ctx, bson.M{"role": models.RoleStyler})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count stylers", err), "")
		return
	}
	totalPartners, err := partnersColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count partners", err), "")
		return
	}
	totalGarments, err := garmentsColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count garments", err), "")
		return
	}
	totalPayments, err := payments.CountDocuments(ctx, bson.M{})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("count payments", err), "")
		return
	}

	// Revenue is the sum of completed payments only.
	revenue, err := sumAggregate(ctx, payments, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.PaymentCompleted}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("sum revenue", err), "")
		return
	}

	logins, err := sumAggregate(ctx, users, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$login_count"},
		}}},
	})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("sum logins", err), "")
		return
	}

	trend, err := registrationTrend(ctx, time.Now(), func(ctx context.Context, start, end time.Time) (int64, error) {
		return users.CountDocuments(ctx, bson.M{
			"created_at": bson.M{"$gte": start, "$lt": end},
		})
	})
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("registration trend", err), "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"totals": map[string]interface{}{
			"users":    totalUsers,
			"stylers":  totalStylers,
			"partners": totalPartners,
			"garments": totalGarments,
			"payments": totalPayments,
		},
		"revenue":           revenue,
		"totalLogins":       int(logins),
		"registrationTrend": trend,
	})
}

type partnerInventory struct {
	models.Partner
	Garments     []models.Garment `json:"garments"`
	GarmentCount int              `json:"garmentCount"`
}

// groupInventoryByPartner attaches each partner's garments, preserving
// the partner order. Garments whose owner is absent from the partner list
// are dropped.
func groupInventoryByPartner(partners []models.Partner, garments []models.Garment) []partnerInventory {
	byOwner := map[primitive.ObjectID][]models.Garment{}
	for _, g := range garments {
		byOwner[g.OwnerID] = append(byOwner[g.OwnerID], g)
	}

	rows := make([]partnerInventory, 0, len(partners))
	for _, p := range partners {
		items := byOwner[p.ID]
		if items == nil {
			items = []models.Garment{}
		}
		rows = append(rows, partnerInventory{
			Partner:      p,
			Garments:     items,
			GarmentCount: len(items),
		})
	}
	return rows
}

// PartnerAnalyticsHandler lists every partner with their full inventory,
// newest partners first (admin only)
func PartnerAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Partner Analytics API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	allPartners, total, err := partners.List(ctx, bson.M{}, 0, 0)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("list partners", err), "")
		return
	}

	allGarments, err := garments.Find(ctx,
		bson.M{"owner_kind": models.OwnerKindPartner},
		bson.D{{Key: "created_at", Value: -1}}, 0, 0)
	if err != nil {
		respondEngineError(w, &logMessageBuilder, engineUpstream("find partner garments", err), "")
		return
	}
	for i := range allGarments {
		allGarments[i].Image = utils.PresignImageURL(ctx, allGarments[i].Image)
	}

	rows := groupInventoryByPartner(allPartners, allGarments)

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returning %d partners", len(rows)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    total,
		"partners": rows,
	})
}
