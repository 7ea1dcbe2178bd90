package hwy

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	bindMu   sync.Mutex
	bound    bool
	override *Config // set by Configure; nil means ConfigFromEnv
)

// selected binds the process-wide target on first use. sync.OnceValue gives
// every concurrent first caller the same *Target and orders the binding
// before any use of it.
var selected = sync.OnceValue(func() *Target {
	bindMu.Lock()
	defer bindMu.Unlock()
	bound = true

	cfg := ConfigFromEnv()
	if override != nil {
		cfg = *override
	}
	return bindTarget(ProbedFeatures(), cfg)
})

// bindTarget chooses among the compiled targets and logs the choice.
func bindTarget(f Features, cfg Config) *Target {
	t := choose(compiledTargets, f, cfg)
	logger().Debug("hwy: target selected",
		slog.String("target", t.name),
		slog.Int("bits", t.bits),
		slog.Int("priority", t.priority),
		slog.String("arch", f.Architecture),
		slog.Bool("probed", f.Probed),
		slog.Bool("no_simd", cfg.NoSimd),
	)
	return t
}

// choose returns the first target of candidates, which are ordered by
// descending priority, that the CPU supports and cfg allows. It falls back
// to the scalar target.
func choose(candidates []*Target, f Features, cfg Config) *Target {
	for _, t := range candidates {
		if t.Compiled() && t.Supports(f) && cfg.Allows(t) {
			return t
		}
	}
	return TargetScalar
}

// Select returns the target the dispatcher bound for this process. The first
// call probes the CPU and reads the configuration; later calls return the
// same value.
func Select() *Target {
	return selected()
}

// CurrentName returns a human-readable name for the selected target.
// For example: "avx2", "neon", "scalar".
func CurrentName() string {
	return Select().name
}

// MaxLanes returns the number of lanes of type T on the selected target.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//   - scalar target: always 1 lane
func MaxLanes[T Lanes]() int {
	return Select().Lanes(laneSize[T]())
}

// SupportedTargets returns the compiled targets the running CPU can execute,
// highest priority first, ignoring any Config.
func SupportedTargets() []*Target {
	f := ProbedFeatures()
	var out []*Target
	for _, t := range compiledTargets {
		if t.Supports(f) {
			out = append(out, t)
		}
	}
	return out
}

var logPtr atomic.Pointer[slog.Logger]

func init() {
	logPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger that receives the target selection record.
// A nil logger discards it. The default discards.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logPtr.Store(l)
}

func logger() *slog.Logger {
	return logPtr.Load()
}
