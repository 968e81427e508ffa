package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// PaymentRequest represents the payload for recording a payment
type PaymentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}

// PaymentsHandler dispatches GET (list with filters) and POST (create).
// Non-admin callers only ever see their own payments.
func PaymentsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Payments API]")

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	collection := utils.GetCollection(config.DatabaseName, "payments")
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	switch r.Method {
	case http.MethodPost:
		var req PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if req.Amount <= 0 {
			utils.RespondError(w, &logMessageBuilder, "Amount must be greater than zero", http.StatusBadRequest)
			return
		}

		status := req.Status
		switch status {
		case "":
			status = models.PaymentPending
		case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed:
		default:
			utils.RespondError(w, &logMessageBuilder, "Status must be one of: pending, completed, failed", http.StatusBadRequest)
			return
		}
		currency := strings.ToUpper(strings.TrimSpace(req.Currency))
		if currency == "" {
			currency = "USD"
		}

		now := time.Now()
		payment := models.Payment{
			UserID:      user.ID,
			Amount:      req.Amount,
			Currency:    currency,
			Method:      req.Method,
			Status:      status,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := collection.InsertOne(ctx, payment)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, engineUpstream("insert payment", err), "")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			payment.ID = id
		}

		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Recorded payment %s", payment.ID.Hex()))
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Payment recorded successfully",
			"payment": payment,
		})

	case http.MethodGet:
		q := r.URL.Query()

		var filters []bson.M
		if user.Role != models.RoleAdmin {
			filters = append(filters, bson.M{"user_id": user.ID})
		}
		if status := q.Get("status"); status != "" {
			filters = append(filters, bson.M{"status": status})
		}
		if search := strings.TrimSpace(q.Get("search")); search != "" {
			filters = append(filters, bson.M{"$or": []bson.M{
				{"description": bson.M{"$regex": search, "$options": "i"}},
				{"method": bson.M{"$regex": search, "$options": "i"}},
				{"currency": bson.M{"$regex": search, "$options": "i"}},
			}})
		}
		dateRange := bson.M{}
		if from := q.Get("from"); from != "" {
			if t, err := time.Parse("2006-01-02", from); err == nil {
				dateRange["$gte"] = t
			}
		}
		if to := q.Get("to"); to != "" {
			if t, err := time.Parse("2006-01-02", to); err == nil {
				dateRange["$lt"] = t.AddDate(0, 0, 1)
			}
		}
		if len(dateRange) > 0 {
			filters = append(filters, bson.M{"created_at": dateRange})
		}

		filter := bson.M{}
		switch len(filters) {
		case 0:
		case 1:
			filter = filters[0]
		default:
			filter = bson.M{"$and": filters}
		}

		limit := int64(20)
		if l, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil && l >= 1 {
			limit = l
		}
		if limit > 50 {
			limit = 50
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(limit)
		cursor, err := collection.Find(ctx, filter, opts)
		if err != nil {
			respondEngineError(w, &logMessageBuilder, engineUpstream("find payments", err), "")
			return
		}
		defer cursor.Close(ctx)

		var payments []models.Payment
		if err := cursor.All(ctx, &payments); err != nil {
			respondEngineError(w, &logMessageBuilder, engineUpstream("decode payments", err), "")
			return
		}
		if payments == nil {
			payments = []models.Payment{}
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"count":    len(payments),
			"payments": payments,
		})

	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// PaymentByIDHandler returns a single payment, visible to its owner or an
// admin
func PaymentByIDHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Payment By ID API]")

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
		utils.RespondError(w, &logMessageBuilder, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	collection := utils.GetCollection(config.DatabaseName, "payments")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payment models.Payment
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondError(w, &logMessageBuilder, "Payment not found", http.StatusNotFound)
		} else {
			respondEngineError(w, &logMessageBuilder, engineUpstream("find payment", err), "")
		}
		return
	}

	if user.Role != models.RoleAdmin && payment.UserID != user.ID {
		utils.RespondError(w, &logMessageBuilder, "Payment not found", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"payment": payment})
}
