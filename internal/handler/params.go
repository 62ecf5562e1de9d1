package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds the named chi path parameter as a UUID. A value that does
// not parse can never name a stored record, so the caller answers 404.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// queryParam binds an exploded form-style query parameter into dest.
// Optional parameters bind into a pointer to pointer (**T) that stays nil
// when the parameter is absent; required ones bind into *T.
func queryParam(r *http.Request, name string, required bool, dest any) error {
	return runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest)
}

// queryList binds an optional comma separated query parameter ("a,b,c").
// dest stays nil when the parameter is absent.
func queryList(r *http.Request, name string, dest **[]string) error {
	return runtime.BindQueryParameter("form", false, false, name, r.URL.Query(), dest)
}

// decodeJSON reads a single JSON value from the request body into dst.
// Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// successResponse is the body of delete-style operations.
type successResponse struct {
	Success bool `json:"success"`
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
