package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stylewise/wardrobe-api/utils"
)

// SkinToneRequest represents the payload for AI skin-tone detection
type SkinToneRequest struct {
	ImageURL string `json:"imageUrl"`
}

// ColorAdviceRequest represents the payload for AI color advice
type ColorAdviceRequest struct {
	SkinTone string `json:"skinTone"`
}

// DetectSkinToneHandler analyzes a portrait image and returns the detected
// skin tone
func DetectSkinToneHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Detect Skin Tone API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SkinToneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ImageURL == "" {
		utils.RespondError(w, &logMessageBuilder, "imageUrl is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	imageURL := utils.PresignImageURL(ctx, req.ImageURL)
	result, err := utils.DetectSkinTone(ctx, imageURL)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to analyze image: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Detected tone %s", result.SkinTone))
	utils.RespondJSON(w, http.StatusOK, result)
}

// SuggestColorsHandler returns AI color recommendations for a skin tone
func SuggestColorsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Suggest Colors API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ColorAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.SkinTone == "" {
		utils.RespondError(w, &logMessageBuilder, "skinTone is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	advice, err := utils.SuggestDressColors(ctx, req.SkinTone)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to generate color advice: %v", err), http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, advice)
}
