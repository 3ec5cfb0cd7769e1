package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// WriteJSON writes the layout document consumed by the fixture pages.
func WriteJSON(w io.Writer, result model.LayoutResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ExportJSON writes the layout document to path.
func ExportJSON(path string, result model.LayoutResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
