package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chrisknsmn/printbox/pkg/export"
	"github.com/chrisknsmn/printbox/pkg/grid"
	"github.com/chrisknsmn/printbox/pkg/mesh"
	"github.com/chrisknsmn/printbox/pkg/stl"
)

// Viewport colors for the advisory validity flag: printable solids
// render green, out-of-bounds ones red.
const (
	colorValid   = "#2ECC71"
	colorInvalid = "#E74C3C"
)

// App is the Wails backend. It owns the single active settings record
// and solid set; both are replaced wholesale on every edit.
type App struct {
	ctx      context.Context
	settings grid.Settings
	solids   []*mesh.Solid
	selected string // solid ID, empty = no selection
}

// MeshData is the JSON-serializable submesh sent to the frontend.
type MeshData struct {
	Vertices []float32  `json:"vertices"`
	Normals  []float32  `json:"normals"`
	Indices  []uint32   `json:"indices"`
	PartName string     `json:"partName"`
	SolidID  string     `json:"solidId"`
	Position [3]float64 `json:"position"`
	Color    string     `json:"color"`
}

// RebuildResult is the full result of a settings update: one entry per
// submesh, the resolved settings echoed back so input fields display
// their clamped values, and the live constraint limits for the panel.
type RebuildResult struct {
	Meshes   []MeshData    `json:"meshes"`
	Settings grid.Settings `json:"settings"`
	Limits   grid.Limits   `json:"limits"`
}

// ExportPayload carries one downloadable file to the frontend. Status
// is a user-visible message; Data is empty when the export failed.
type ExportPayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
	Status   string `json:"status"`
}

// NewApp creates a new App with the default grid.
func NewApp() *App {
	return &App{settings: grid.DefaultSettings()}
}

// startup is called by Wails on app startup. The context is saved for
// the save dialogs used by the SaveExport binding.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.rebuild()
}

// rebuild replaces the solid set from the current settings. The old
// set is dropped wholesale so at most one generation exists at a time.
func (a *App) rebuild() {
	a.settings = grid.Resolve(a.settings)
	a.solids = grid.Populate(a.settings)
	if a.selected != "" && a.findSolid(a.selected) == nil {
		a.selected = ""
	}
}

func (a *App) findSolid(id string) *mesh.Solid {
	for _, s := range a.solids {
		if s.ID.String() == id {
			return s
		}
	}
	return nil
}

// UpdateSettings replaces the grid settings and rebuilds every solid.
// This is the primary binding called on each committed edit.
func (a *App) UpdateSettings(s grid.Settings) RebuildResult {
	a.settings = s
	a.rebuild()

	result := RebuildResult{
		Meshes:   []MeshData{},
		Settings: a.settings,
		Limits:   grid.ResolveLimits(a.settings),
	}
	for _, solid := range a.solids {
		color := colorValid
		if !solid.Valid {
			color = colorInvalid
		}
		for _, m := range solid.Meshes {
			flat := mesh.Flatten(m)
			result.Meshes = append(result.Meshes, MeshData{
				Vertices: flat.Vertices,
				Normals:  flat.Normals,
				Indices:  flat.Indices,
				PartName: solid.Name + "/" + m.Name,
				SolidID:  solid.ID.String(),
				Position: [3]float64{solid.Position.X, solid.Position.Y, solid.Position.Z},
				Color:    color,
			})
		}
	}
	return result
}

// Select marks a solid as the export target. An empty or unknown ID
// clears the selection, so export falls back to the whole batch.
func (a *App) Select(id string) {
	if a.findSolid(id) == nil {
		a.selected = ""
		return
	}
	a.selected = id
}

// Export serializes the current selection to a single binary STL, or
// the whole grid to a deduplicated ZIP when nothing is selected.
// Failures are contained here: the scene state is untouched and the
// status message tells the user to retry.
func (a *App) Export() (payload ExportPayload) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("export panic: %v", r)
			payload = ExportPayload{Status: fmt.Sprintf("export failed: %v", r)}
		}
	}()

	if a.selected != "" {
		solid := a.findSolid(a.selected)
		return ExportPayload{
			Filename: export.SignatureOf(solid).FileName(),
			Data:     stl.Encode(solid),
			Status:   "exported 1 box",
		}
	}

	groups := export.Dedup(a.solids)
	data, err := export.BuildArchive(groups, nil)
	if err != nil {
		log.Printf("export: %v", err)
		return ExportPayload{Status: "export failed: " + err.Error()}
	}
	return ExportPayload{
		Filename: export.ArchiveName(len(groups), time.Now()),
		Data:     data,
		Status:   fmt.Sprintf("exported %d unique design(s) from %d box(es)", len(groups), len(a.solids)),
	}
}

// SaveExport runs Export and writes the result through a native save
// dialog. Returns the status message shown in the panel.
func (a *App) SaveExport() string {
	payload := a.Export()
	if len(payload.Data) == 0 {
		return payload.Status
	}

	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		DefaultFilename: payload.Filename,
	})
	if err != nil {
		log.Printf("save dialog: %v", err)
		return "save canceled: " + err.Error()
	}
	if path == "" {
		return "save canceled"
	}
	if err := os.WriteFile(path, payload.Data, 0o644); err != nil {
		log.Printf("save: %v", err)
		return "save failed: " + err.Error()
	}
	return payload.Status
}
