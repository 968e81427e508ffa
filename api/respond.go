package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/engine"
	"github.com/stylewise/wardrobe-api/utils"
)

// respondEngineError maps an engine error to its HTTP status. Upstream
// detail is exposed only outside production.
func respondEngineError(w http.ResponseWriter, lb *strings.Builder, err error, notFoundMessage string) {
	var vErr *engine.ValidationError
	if errors.As(err, &vErr) {
		utils.RespondError(w, lb, vErr.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, engine.ErrNotFound) {
		utils.RespondError(w, lb, notFoundMessage, http.StatusNotFound)
		return
	}

	message := "Server error"
	if !config.IsProduction() {
		message = fmt.Sprintf("Server error: %v", err)
	}
	utils.RespondError(w, lb, message, http.StatusInternalServerError)
}

func engineUpstream(op string, err error) error {
	return &engine.UpstreamError{Op: op, Err: err}
}
