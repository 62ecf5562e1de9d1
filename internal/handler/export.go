package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{"category", "name", "quantity", "purchased"}

// shoppingListExport is the JSON export: the list grouped by category.
type shoppingListExport struct {
	TripID     string                 `json:"tripId"`
	TotalCost  float64                `json:"totalCost"`
	Categories []domain.CategoryGroup `json:"categories"`
}

// ExportShoppingList handles GET /trips/{id}/shopping-list/export.
// Use ?format=csv to receive CSV; default is JSON grouped by category.
func (s *Server) ExportShoppingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(shoppingListErrors.notFound))
		return
	}

	var format *string
	if err := queryParam(r, "format", false, &format); err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody("format must be csv or json"))
		return
	}
	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json":
		default:
			writeJSON(w, http.StatusBadRequest, validationBody("format must be csv or json"))
			return
		}
	}

	list, err := s.lists.Get(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err, shoppingListErrors)
		return
	}

	filename := "shopping-list-" + tripID.String()
	if !wantCSV {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, filename))
		writeJSON(w, http.StatusOK, shoppingListExport{
			TripID:     tripID.String(),
			TotalCost:  list.TotalCost,
			Categories: list.GroupByCategory(),
		})
		return
	}

	body := buildCSV(list)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "handler: write csv export", "error", err)
	}
}

// buildCSV encodes the list one item per row, grouped by category.
func buildCSV(list domain.ShoppingList) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, group := range list.GroupByCategory() {
		for _, item := range group.Items {
			//nolint:errcheck
			w.Write([]string{
				group.Category,
				item.Name,
				item.Quantity,
				strconv.FormatBool(item.Purchased),
			})
		}
	}
	w.Flush()
	return &buf
}
