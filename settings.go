package primetower

import "github.com/gogpu/primetower/geom"

// Setting keys read by the engine.
const (
	KeyEnable              = "prime_tower_enable"
	KeySize                = "prime_tower_size"
	KeyPositionX           = "prime_tower_position_x"
	KeyPositionY           = "prime_tower_position_y"
	KeyMinVolume           = "prime_tower_min_volume"
	KeyFlow                = "prime_tower_flow"
	KeyLineWidth           = "prime_tower_line_width"
	KeyMaxBridgingDistance = "prime_tower_max_bridging_distance"
	KeyWipeEnabled         = "prime_tower_wipe_enabled"
	KeyBaseEnable          = "prime_tower_brim_enable"
	KeyBaseSize            = "prime_tower_base_size"
	KeyBaseHeight          = "prime_tower_base_height"
	KeyBaseCurveMagnitude  = "prime_tower_base_curve_magnitude"
	KeyMode                = "prime_tower_mode"
	KeyAdhesionTendency    = "material_adhesion_tendency"
	KeyLayerHeight         = "layer_height"
	KeyNozzleSize          = "machine_nozzle_size"
	KeyNozzleOffsetX       = "machine_nozzle_offset_x"
	KeyNozzleOffsetY       = "machine_nozzle_offset_y"
)

// Settings is a typed, read-only view of one settings scope.
// Missing keys read as the zero value.
type Settings interface {
	// Length returns a length in micrometres.
	Length(key string) geom.Coord
	Bool(key string) bool
	Float(key string) float64
	// Ratio returns a fraction, 1.0 meaning 100 %.
	Ratio(key string) float64
	Enum(key string) string
}

// Scene gives access to the settings of one slicing job.
type Scene interface {
	// Settings returns the mesh-group scope.
	Settings() Settings
	ExtruderCount() int
	// Extruder returns the scope of extruder nr. Keys the extruder does not
	// override fall back to the mesh-group scope.
	Extruder(nr int) Settings
}

func nozzleOffset(s Settings) geom.Point {
	return geom.Pt(s.Length(KeyNozzleOffsetX), s.Length(KeyNozzleOffsetY))
}
