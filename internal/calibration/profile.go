package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/config"
)

const (
	// CurrentProfileVersion is bumped whenever the profile layout or the
	// meaning of a threshold changes; older profiles are then ignored.
	CurrentProfileVersion = 1
	// DefaultProfileFileName is created in the user's home directory.
	DefaultProfileFileName = ".bigcalc_calibration.json"
	// DefaultMaxProfileAge is how long a profile is trusted.
	DefaultMaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile records the outcome of a calibration run together with
// the machine it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	// OptimalParallelThreshold is in digits; 0 means sequential.
	OptimalParallelThreshold int    `json:"optimal_parallel_threshold"`
	CalibrationDigits        int    `json:"calibration_digits"`
	CalibrationTime          string `json:"calibration_time"`
}

// NewProfile returns an empty profile stamped with the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// IsValid reports whether p was measured on hardware matching this process.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether p is older than maxAge. A nil profile is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile v%d (%s)\n", p.ProfileVersion, p.CalibratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  Machine:            %s/%s, %d CPUs, %d-bit, %s\n", p.GOOS, p.GOARCH, p.NumCPU, p.WordSize, p.GoVersion)
	fmt.Fprintf(&b, "  Parallel threshold: %s\n", thresholdLabel(p.OptimalParallelThreshold))
	fmt.Fprintf(&b, "  Benchmark:          %d-digit products in %s", p.CalibrationDigits, p.CalibrationTime)
	return b.String()
}

// SaveProfile writes p as indented JSON. The file is replaced atomically.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one when
// the file is missing or unreadable. loaded reports which happened.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	if p, err := loadProfile(path); err == nil {
		return p, true
	}
	return NewProfile(), false
}

// GetDefaultProfilePath returns ~/.bigcalc_calibration.json, or the file name
// alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// LoadCachedCalibration applies a saved profile to the parallelism settings
// that cfg leaves at zero. It returns false, leaving cfg untouched, when no
// valid and fresh profile exists at path (the default path when empty).
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(DefaultMaxProfileAge) {
		return cfg, false
	}
	if cfg.Threshold == 0 && !cfg.Sequential {
		cfg.Threshold = p.OptimalParallelThreshold
		cfg.Sequential = p.OptimalParallelThreshold == 0
	}
	if cfg.MaxTasks == 0 {
		cfg.MaxTasks = config.EstimateOptimalMaxTasks()
	}
	return cfg, true
}
