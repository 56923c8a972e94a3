package obs

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

const sceneFileName = "metalcast_scene.json"

type sceneSource struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings"`
	Pos      map[string]int `json:"pos"`
}

type scene struct {
	Name    string        `json:"name"`
	Sources []sceneSource `json:"sources"`
}

type sceneCollection struct {
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings"`
	Scenes   []scene        `json:"scenes"`
}

// WriteSceneCollection exports a one-shot OBS scene collection pointing at
// the artifact files this process maintains. Run once at startup; OBS picks
// up subsequent content changes through the referenced files.
func (a *Artifacts) WriteSceneCollection() error {
	collection := sceneCollection{
		Name: "Metalcast",
		Settings: map[string]any{
			"width":   1920,
			"height":  1080,
			"fps_num": 30,
			"fps_den": 1,
		},
		Scenes: []scene{{
			Name: "Main Stream",
			Sources: []sceneSource{
				{
					Name:     "Background",
					Type:     "image_source",
					Settings: map[string]any{"file": filepath.Join(a.dir, "images", "background.png")},
					Pos:      map[string]int{"x": 0, "y": 0},
				},
				{
					Name:     "Market Overview",
					Type:     "image_source",
					Settings: map[string]any{"file": filepath.Join(a.dir, "images", "market_overview.png")},
					Pos:      map[string]int{"x": 1280, "y": 80},
				},
				{
					Name:     "News Ticker",
					Type:     "text_gdiplus",
					Settings: map[string]any{"read_from_file": true, "file": a.TickerPath()},
					Pos:      map[string]int{"x": 0, "y": 1020},
				},
				{
					Name:     "Commentary Audio",
					Type:     "ffmpeg_source",
					Settings: map[string]any{"local_file": filepath.Join(a.dir, "audio"), "is_local_file": true},
					Pos:      map[string]int{"x": 0, "y": 0},
				},
			},
		}},
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(a.dir, sceneFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Printf("Generated scene collection: %s", path)
	return nil
}
