// Copyright 2025 EduPuzzle Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"log/slog"
	"maps"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Daily     Daily     `mapstructure:"daily" yaml:"daily" json:"daily"`
	Supabase  Supabase  `mapstructure:"supabase" yaml:"supabase" json:"supabase"`
	Telemetry Telemetry `mapstructure:"telemetry" yaml:"telemetry" json:"telemetry"`
}

type Daily struct {
	Count int      `mapstructure:"count" yaml:"count" json:"count"`
	Lists []string `mapstructure:"lists" yaml:"lists" json:"lists"`
}

type Supabase struct {
	URL        string        `mapstructure:"url" yaml:"url" json:"url"`
	APIKey     string        `mapstructure:"apiKey" yaml:"apiKey" json:"apiKey"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	QueueDepth int           `mapstructure:"queueDepth" yaml:"queueDepth" json:"queueDepth"`
	Breaker    Breaker       `mapstructure:"breaker" yaml:"breaker" json:"breaker"`
}

type Breaker struct {
	FailureThreshold int           `mapstructure:"failureThreshold" yaml:"failureThreshold" json:"failureThreshold"`
	RecoveryTimeout  time.Duration `mapstructure:"recoveryTimeout" yaml:"recoveryTimeout" json:"recoveryTimeout"`
	MonitoringPeriod time.Duration `mapstructure:"monitoringPeriod" yaml:"monitoringPeriod" json:"monitoringPeriod"`
}

type Telemetry struct {
	Endpoint string            `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	Headers  map[string]string `mapstructure:"headers" yaml:"headers" json:"headers"`
	Timeout  time.Duration     `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// LoadConfigs reads the given YAML files in order and merges them into a
// single configuration, later files overriding earlier ones. Zero values
// in a later file leave the earlier value in place.
func LoadConfigs(fnames []string) (*Config, error) {
	merged := &Config{
		Daily: Daily{
			Count: 10,
		},
		Supabase: Supabase{
			Timeout:    10 * time.Second,
			QueueDepth: 16,
		},
		Telemetry: Telemetry{
			Timeout: 5 * time.Second,
		},
	}
	for _, fname := range fnames {
		slog.Info("Loading config", "file", fname)
		config, err := loadConfig(fname)
		if err != nil {
			return nil, err
		}
		if config.Daily.Count != 0 {
			merged.Daily.Count = config.Daily.Count
		}
		merged.Daily.Lists = append(merged.Daily.Lists, config.Daily.Lists...)
		if config.Supabase.URL != "" {
			merged.Supabase.URL = config.Supabase.URL
		}
		if config.Supabase.APIKey != "" {
			merged.Supabase.APIKey = config.Supabase.APIKey
		}
		if config.Supabase.Timeout != 0 {
			merged.Supabase.Timeout = config.Supabase.Timeout
		}
		if config.Supabase.QueueDepth != 0 {
			merged.Supabase.QueueDepth = config.Supabase.QueueDepth
		}
		if config.Supabase.Breaker.FailureThreshold != 0 {
			merged.Supabase.Breaker.FailureThreshold = config.Supabase.Breaker.FailureThreshold
		}
		if config.Supabase.Breaker.RecoveryTimeout != 0 {
			merged.Supabase.Breaker.RecoveryTimeout = config.Supabase.Breaker.RecoveryTimeout
		}
		if config.Supabase.Breaker.MonitoringPeriod != 0 {
			merged.Supabase.Breaker.MonitoringPeriod = config.Supabase.Breaker.MonitoringPeriod
		}
		if config.Telemetry.Endpoint != "" {
			merged.Telemetry.Endpoint = config.Telemetry.Endpoint
		}
		if config.Telemetry.Timeout != 0 {
			merged.Telemetry.Timeout = config.Telemetry.Timeout
		}
		if config.Telemetry.Headers != nil {
			if merged.Telemetry.Headers == nil {
				merged.Telemetry.Headers = make(map[string]string)
			}
			maps.Copy(merged.Telemetry.Headers, config.Telemetry.Headers)
		}
	}
	return merged, nil
}

func loadConfig(fname string) (*Config, error) {
	var config Config
	if err := LoadYAML(fname, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func LoadYAML(fname string, config *Config) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, config)
}

func MarshalYAML(config *Config) ([]byte, error) {
	b, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}
	return b, nil
}
