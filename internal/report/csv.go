package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"competitor_scout/internal/domain"
)

// Header is the persisted column set, in order. Changing it breaks
// downstream spreadsheets, so it is fixed.
var Header = []string{"Business", "Rating", "Reviews_Count", "Address"}

// WriteCSV persists one row per business. A nil rating serializes to an
// empty field; every other field round-trips verbatim.
func WriteCSV(path string, places []domain.Place) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, p := range places {
		rating := ""
		if p.Rating != nil {
			rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
		}
		row := []string{p.Name, rating, strconv.Itoa(p.ReviewsCount), p.Address}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
