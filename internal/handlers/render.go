package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// render executes a template into a buffer so a failure can still be
// reported with a proper status
func render(w http.ResponseWriter, tmpl *template.Template, logger *zap.Logger, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		respondWithError(w, logger, http.StatusInternalServerError, ErrInternalServerError, "Error rendering "+name, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Debug("client went away during render", zap.String("template", name), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
