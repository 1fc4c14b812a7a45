package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/oclimb/climb"
	"github.com/oomph-ac/oclimb/game"
)

func TestSaveDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oclimb.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("unexpected error saving defaults: %v", err)
	}
	if err := SaveDefault(path); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists on a second save, got %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if got := s.ClimbConfig(); got != climb.DefaultConfig() {
		t.Fatalf("expected the default climbing config, got %+v", got)
	}
	if s.Climbing.LedgeClimbMontage != "ledge_climb" {
		t.Fatalf("unexpected montage name %q", s.Climbing.LedgeClimbMontage)
	}
	if s.Server.TickRate != 60 {
		t.Fatalf("unexpected tick rate %d", s.Server.TickRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadClampsAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oclimb.toml")
	data := []byte("[Climbing]\nMaxHorizontalDegrees = 90.0\nClimbingSnapSpeed = -3.0\n\n[Server]\nDebug = [\"climb\", \"bogus\"]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("unexpected error writing settings: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if s.Climbing.MaxHorizontalDegrees != 75 {
		t.Fatalf("expected the angle to be clamped to 75, got %v", s.Climbing.MaxHorizontalDegrees)
	}
	if s.Climbing.ClimbingSnapSpeed != 0 {
		t.Fatalf("expected the snap speed to be clamped to 0, got %v", s.Climbing.ClimbingSnapSpeed)
	}
	if s.Climbing.MaxClimbingSpeed != 120 {
		t.Fatalf("expected unset values to keep their defaults, got %v", s.Climbing.MaxClimbingSpeed)
	}

	modes, unknown := s.DebugModes()
	if len(modes) != 1 || modes[0] != game.DebugModeClimb {
		t.Fatalf("expected the climb debug mode, got %v", modes)
	}
	if len(unknown) != 1 || unknown[0] != "bogus" {
		t.Fatalf("expected the unknown mode to be reported, got %v", unknown)
	}
}

func TestMovementConfig(t *testing.T) {
	s := DefaultSettings()
	s.Agent.Radius = 30
	s.Movement.Gravity = 500

	conf := s.MovementConfig()
	if conf.Radius != 30 || conf.Gravity != 500 {
		t.Fatalf("expected overrides to be applied, got %+v", conf)
	}
	if conf.HalfHeight != 96 {
		t.Fatalf("expected the default half height, got %v", conf.HalfHeight)
	}
}
