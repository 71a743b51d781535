// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
		TokenSecret   string   `json:"token_secret"`
		TokenSalt     string   `json:"token_salt"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		ClientSecret  string   `json:"client_secret"`
	} `json:"app,omitempty"`

	VSync struct {
		RefreshRate    uint32 `json:"refresh_rate"`
		MaxConnections int    `json:"max_connections"`
	} `json:"vsync,omitempty"`

	Transactions struct {
		SyncTimeout Duration `json:"sync_timeout"`
		QueueLimit  int      `json:"queue_limit"`
	} `json:"transactions,omitempty"`

	Composer struct {
		CallbackBudget          Duration `json:"callback_budget"`
		DirectClientComposition bool     `json:"direct_client_composition"`
		SimScreens              int      `json:"sim_screens"`
		SimResolution           string   `json:"sim_resolution"`
		SimLayerCapacity        int      `json:"sim_layer_capacity"`
	} `json:"composer,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		CheckpointInterval Duration `json:"checkpoint_interval"`
		WatchConfig        bool     `json:"watch_config"`
	} `json:"workers,omitempty"`
}

// ParseJSONFile reads a JSON config file. The config watcher calls it again
// whenever the file changes.
func ParseJSONFile(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
			TokenSecret:   jsonCfg.App.TokenSecret,
			TokenSalt:     jsonCfg.App.TokenSalt,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			ClientSecret:  jsonCfg.App.ClientSecret,
		},
		VSync: VSync{
			RefreshRate:    jsonCfg.VSync.RefreshRate,
			MaxConnections: jsonCfg.VSync.MaxConnections,
		},
		Transactions: Transactions{
			SyncTimeout: time.Duration(jsonCfg.Transactions.SyncTimeout),
			QueueLimit:  jsonCfg.Transactions.QueueLimit,
		},
		Composer: Composer{
			CallbackBudget:          time.Duration(jsonCfg.Composer.CallbackBudget),
			DirectClientComposition: jsonCfg.Composer.DirectClientComposition,
			SimScreens:              jsonCfg.Composer.SimScreens,
			SimResolution:           jsonCfg.Composer.SimResolution,
			SimLayerCapacity:        jsonCfg.Composer.SimLayerCapacity,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			CheckpointInterval: time.Duration(jsonCfg.Workers.CheckpointInterval),
			WatchConfig:        jsonCfg.Workers.WatchConfig,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
