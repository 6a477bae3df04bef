// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Genome     GenomeConfig     `yaml:"genome"`
	Population PopulationConfig `yaml:"population"`
	Force      ForceConfig      `yaml:"force"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Energy     EnergyConfig     `yaml:"energy"`
	Food       FoodConfig       `yaml:"food"`
	Effects    EffectsConfig    `yaml:"effects"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can differ from the screen; zero means "use screen size".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds collision and integration parameters.
type PhysicsConfig struct {
	DT                 float64 `yaml:"dt"`
	Restitution        float64 `yaml:"restitution"`          // Global bounciness, mixed with elasticity genes
	CollisionRepulsion float64 `yaml:"collision_repulsion"`  // Overlap correction strength
	TorqueMultiplier   float64 `yaml:"torque_multiplier"`    // Accumulated torque -> angular acceleration scale
	CollisionTorque    float64 `yaml:"collision_torque"`     // Angular impulse scale on impact
	MaxAngularVelocity float64 `yaml:"max_angular_velocity"` // Hard omega clamp (rad/s)
	CollisionCost      float64 `yaml:"collision_cost"`       // Energy cost per unit of clamped impulse
	MaxImpulseCost     float64 `yaml:"max_impulse_cost"`     // Impulse magnitude cap for cost purposes
	WallDeflection     float64 `yaml:"wall_deflection"`      // Random tangential kick on wall hits
	WallAngularKick    float64 `yaml:"wall_angular_kick"`    // Random spin on wall hits
	WallEffectSpeed    float64 `yaml:"wall_effect_speed"`    // Min impact speed for a wall collision effect
}

// GenomeConfig holds genetic encoding parameters.
type GenomeConfig struct {
	LimbCount    int     `yaml:"limb_count"`
	MutationRate float64 `yaml:"mutation_rate"`
}

// PopulationConfig holds population seeding parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// ForceConfig holds locomotion and drag parameters.
type ForceConfig struct {
	PowerFactor      float64 `yaml:"power_factor"`      // Power-stroke thrust scale
	RecoveryFactor   float64 `yaml:"recovery_factor"`   // Recovery-stroke thrust scale
	RippleMultiplier float64 `yaml:"ripple_multiplier"` // Extra thrust near peak power
	SurfaceTension   float64 `yaml:"surface_tension"`   // Low-speed thrust boost
	TensionRefSpeed  float64 `yaml:"tension_ref_speed"` // Speed at which the boost has fully faded
	WaterResistance  float64 `yaml:"water_resistance"`  // Quadratic drag coefficient
	ResistanceFade   float64 `yaml:"resistance_fade"`   // Drag coefficient falloff with speed
	Misalignment     float64 `yaml:"misalignment"`      // Torque turning heading toward velocity
	SkitterSpeed     float64 `yaml:"skitter_speed"`     // Below this speed, random jitter applies
	SkitterStrength  float64 `yaml:"skitter_strength"`  // Jitter force magnitude
	RotationalDrag   float64 `yaml:"rotational_drag"`   // Quadratic angular drag coefficient
	TurnAttenuation  float64 `yaml:"turn_attenuation"`  // Speed-dependent turn damping
}

// GravityConfig holds central gravity well parameters.
type GravityConfig struct {
	Strength      float64 `yaml:"strength"`       // Inward radial pull
	Vortex        float64 `yaml:"vortex"`         // Tangential swirl
	FalloffRadius float64 `yaml:"falloff_radius"` // Influence radius (0 = 45% of the smaller world dim)
	Align         float64 `yaml:"align"`          // Torque nudging heading toward the centre
}

// EnergyConfig holds metabolism and reproduction economics.
type EnergyConfig struct {
	Max                   float64 `yaml:"max"`
	Initial               float64 `yaml:"initial"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	BasalCost             float64 `yaml:"basal_cost"`    // Drain per second for existing
	ThrustCost            float64 `yaml:"thrust_cost"`   // Drain per unit of accumulated thrust per second
	TargetSystem          float64 `yaml:"target_system"` // Pellets spawn while crabs+pellets hold less than this
}

// FoodConfig holds pellet parameters.
type FoodConfig struct {
	Value       float64 `yaml:"value"`
	Radius      float64 `yaml:"radius"`
	SpawnChance float64 `yaml:"spawn_chance"` // Per-tick chance while below the system energy target
}

// EffectsConfig holds the visual effect queue parameters.
type EffectsConfig struct {
	QueueSize    int     `yaml:"queue_size"`
	MaxIntensity float64 `yaml:"max_intensity"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32 // Physics.DT as float32
	ScreenW32     float32
	ScreenH32     float32
	WorldW32      float32 // Effective world width
	WorldH32      float32
	CenterX32     float32 // Gravity well centre
	CenterY32     float32
	WellRadius32  float32 // Effective gravity falloff radius
	MaxEnergy32   float32
	ReproThresh32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	c.Derived.CenterX32 = c.Derived.WorldW32 / 2
	c.Derived.CenterY32 = c.Derived.WorldH32 / 2

	// Gravity falloff defaults to 45% of the smaller world dimension
	radius := float32(c.Gravity.FalloffRadius)
	if radius <= 0 {
		minDim := c.Derived.WorldW32
		if c.Derived.WorldH32 < minDim {
			minDim = c.Derived.WorldH32
		}
		radius = minDim * 0.45
	}
	c.Derived.WellRadius32 = radius

	c.Derived.MaxEnergy32 = float32(c.Energy.Max)
	c.Derived.ReproThresh32 = float32(c.Energy.ReproductionThreshold)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
