package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered outfit in the gallery manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	DollID   string `json:"doll_id,omitempty"`
	Garments int    `json:"garments"`
}

// WriteManifest writes manifest.json for the successful renders.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Image:    r.Image,
			DollID:   r.DollID,
			Garments: r.Garments,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
