package adaptive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// #region profile

// SampleCounts records how many baseline samples each metric contributed.
// The raw baselines themselves are discarded after calibration finalizes.
type SampleCounts struct {
	EAR   int `json:"ear_samples"`
	Gaze  int `json:"gaze_samples"`
	Pitch int `json:"pitch_samples"`
	Yaw   int `json:"yaw_samples"`
	Roll  int `json:"roll_samples"`
}

// Profile is the persisted per-user calibration record. The format is
// stable: loading a just-saved profile reproduces the same thresholds.
type Profile struct {
	UserID       string       `json:"user_id"`
	Calibrated   bool         `json:"is_calibrated"`
	Thresholds   Thresholds   `json:"thresholds"`
	SampleCounts SampleCounts `json:"calibration_stats"`
}

// #endregion profile

// #region load-save

// ProfilePath returns the calibration file path for a user within dir.
func ProfilePath(dir, userID string) string {
	return filepath.Join(dir, fmt.Sprintf("calibration_%s.json", userID))
}

// LoadProfile reads a calibration profile from path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// SaveProfile writes a calibration profile to path.
func SaveProfile(path string, p Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile %s: %w", path, err)
	}
	return nil
}

// #endregion load-save
