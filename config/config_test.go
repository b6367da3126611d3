package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.OrgTimezone != "America/New_York" {
		t.Errorf("OrgTimezone = %q", cfg.OrgTimezone)
	}
	if cfg.GridMinutes != 30 || cfg.DisplayStartHour != 6 || cfg.DisplayEndHour != 22 {
		t.Errorf("scheduling defaults = %d %d %d", cfg.GridMinutes, cfg.DisplayStartHour, cfg.DisplayEndHour)
	}
	if cfg.UrgencyThreshold != 0.75 {
		t.Errorf("UrgencyThreshold = %v", cfg.UrgencyThreshold)
	}
	if cfg.RedisSessionDB == cfg.RedisQueueDB || cfg.RedisQueueDB == cfg.RedisEventsDB {
		t.Errorf("redis databases must be distinct: %d %d %d", cfg.RedisSessionDB, cfg.RedisQueueDB, cfg.RedisEventsDB)
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	SetDefaults()
	t.Setenv("GRID_MINUTES", "15")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.GridMinutes != 15 {
		t.Errorf("GridMinutes = %d, want 15", cfg.GridMinutes)
	}
}
