package rest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/southpawriter02/docstratum/api"
)

// renderJSON renders v as JSON into the response.
func renderJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func renderJSONError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, marshalErr := json.Marshal(api.Error{Error: err.Error()})
	if marshalErr != nil {
		return
	}
	w.Write(payload)
}

// readRequestJSON decodes the request body into v, expecting a JSON
// content type and a single JSON value.
func readRequestJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("parse content type: %w", err)
	}
	if mediaType != "application/json" {
		return fmt.Errorf("expect application/json Content-Type, got %s", mediaType)
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("body must contain a single JSON value")
	}

	return nil
}
