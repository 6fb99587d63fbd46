package rb2d

import "github.com/solidphys/rb2d/math/lin"

// Settings configures a World at construction time. Every field has a
// documented default; the zero value of Settings is not meant to be
// used directly, use DefaultSettings().
type Settings struct {
	Gravity lin.V2 // Acceleration applied to gravity-enabled dynamic bodies.

	DefaultRestitution   float64 // Restitution used by colliders that don't override it.
	RestitutionThreshold float64 // Relative normal velocity below which restitution is not applied.
	DefaultFriction      float64 // Friction used by colliders that don't override it.

	SleepingEnabled     bool    // Whether bodies are allowed to sleep at all.
	SleepLinearVelocity float64 // |v| threshold below which a body is considered quiescent.
	SleepAngularSpeed   float64 // |omega| threshold below which a body is considered quiescent.
	SleepTime           float64 // Seconds an island must stay quiescent before sleeping.

	VelocityIterations int // Sequential-impulse velocity solver iteration count.
	PositionIterations int // Pseudo-velocity position solver iteration count.

	// Numerical tuning constants. These are kept per-World
	// rather than as package constants so independent Worlds (notably in
	// tests) never share mutable global tuning.
	LinearSlop          float64 // Allowed penetration before the position solver pushes back.
	Baumgarte           float64 // Position solver correction fraction per iteration.
	MaxLinearCorrection float64 // Clamp on a single position-solver correction.
	MaxTranslation      float64 // Clamp on distance traveled by a body in one step.
	MaxRotation         float64 // Clamp on angle traveled by a body in one step (radians).
	MaxLinearVelocitySq float64 // Clamp applied before MaxTranslation to avoid divide blowups.

	Logger Logger // Injectable logging hook; the zero value falls back to slog.Default().

	// Allocator is reset once at the end of every step. Left nil, a
	// World falls back to a no-op allocator since its own scratch slices
	// are already reused in place.
	Allocator Allocator
}

// DefaultSettings returns a Settings populated with reasonable defaults
// for a general-purpose simulation.
func DefaultSettings() Settings {
	return Settings{
		Gravity:              lin.Vec2(0, -9.81),
		DefaultRestitution:   0.5,
		RestitutionThreshold: 1.0,
		DefaultFriction:      0.3,
		SleepingEnabled:      true,
		SleepLinearVelocity:  0.02,
		SleepAngularSpeed:    0.0524, // ~3 degrees/second
		SleepTime:            1.0,
		VelocityIterations:   10,
		PositionIterations:   8,
		LinearSlop:           0.005,
		Baumgarte:            0.2,
		MaxLinearCorrection:  0.2,
		MaxTranslation:       2.0,
		MaxRotation:          0.5 * lin.PI,
		MaxLinearVelocitySq:  lin.Large,
		Logger:               NewLogger(nil),
		Allocator:            defaultAllocator{},
	}
}
