package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the single render layer used by the viewer scene.
const Default ecs.LayerID = 0

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
}

// MapConfig contains tile map storage and loading configuration
type MapConfig struct {
	SheetsFile  string // Default sheets config name, relative to the map directory
	GroupsFile  string // Default groups config name, relative to the map directory
	SpaceCellW  int    // resolv cell width for tile physics
	SpaceCellH  int    // resolv cell height for tile physics
	MapFileName string // Default map file name in storage
}

// ExtractConfig contains tile sheet extraction configuration
type ExtractConfig struct {
	IgnoredColor color.RGBA // Rip tiles starting with this color are skipped
	Horizontal   int        // Output sheet width in tiles
	Vertical     int        // Output sheet height in tiles
	Extension    string     // Output sheet file extension
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 // How fast camera follows its target (0.0-1.0)
	PanDuration     float32 // Seconds for a tweened pan
	PanStep         float64 // Pixels moved per pan key press
}

// PhysicsConfig contains tile physics configuration
type PhysicsConfig struct {
	Gravity      float64
	MaxFallSpeed float64  // Downward speed cap, positive
	MaxRiseSpeed float64  // Upward speed cap
	MaxRunSpeed  float64  // Horizontal speed cap
	SolidGroups  []string // Tile groups that become solid resolv objects
}

// DebugConfig contains debug overlay options
type DebugConfig struct {
	ShowCollision bool
	ShowGrid      bool
	FontSize      float64
}

// Global configuration instances
var C *Config
var Map MapConfig
var Extract ExtractConfig
var Camera CameraConfig
var Physics PhysicsConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Cyan      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Grey      = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	GridColor = color.RGBA{R: 255, G: 255, B: 255, A: 40}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Map = MapConfig{
		SheetsFile:  "sheets.xml",
		GroupsFile:  "groups.xml",
		SpaceCellW:  16,
		SpaceCellH:  16,
		MapFileName: "level.map",
	}

	Extract = ExtractConfig{
		IgnoredColor: color.RGBA{R: 0, G: 128, B: 128, A: 255},
		Horizontal:   16,
		Vertical:     16,
		Extension:    ".png",
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.1,
		PanDuration:     0.4,
		PanStep:         128,
	}

	Physics = PhysicsConfig{
		Gravity:      0.75,
		MaxFallSpeed: 10.0,
		MaxRiseSpeed: 10.0,
		MaxRunSpeed:  4.0,
		SolidGroups:  []string{"ground", "wall", "solid"},
	}

	Debug = DebugConfig{
		ShowCollision: false,
		ShowGrid:      false,
		FontSize:      10,
	}
}
