package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ParseIntQuery reads an integer query parameter within [minVal, maxVal].
// Returns def when the parameter is absent, or false on error
// (after writing an error response).
func ParseIntQuery(w http.ResponseWriter, r *http.Request, name string, def, minVal, maxVal int, logger *zap.Logger) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < minVal || v > maxVal {
		writeBadRequest(w, logger, fmt.Sprintf("%s must be an integer between %d and %d", name, minVal, maxVal))
		return 0, false
	}
	return v, true
}
