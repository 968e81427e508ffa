package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/utils"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UploadImageHandler accepts a multipart image upload, stores it in S3 and
// returns the object key with a presigned read URL
func UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Upload Image API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := UserFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondError(w, &logMessageBuilder, "File too large or malformed multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		utils.RespondError(w, &logMessageBuilder, "Only JPEG, PNG and WebP images are allowed", http.StatusBadRequest)
		return
	}

	objectKey := fmt.Sprintf("uploads/%s/%s%s",
		user.ID.Hex(), primitive.NewObjectID().Hex(), filepath.Ext(header.Filename))

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if _, err := utils.UploadFileToS3(ctx, file, objectKey, contentType); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to upload image", http.StatusInternalServerError)
		return
	}

	url, err := utils.GetPresignedURL(ctx, objectKey)
	if err != nil {
		url = ""
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Uploaded %s", objectKey))
	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "Image uploaded successfully",
		"key":     objectKey,
		"url":     url,
	})
}
