package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so JSON config files can carry values like
// "30s" or "1m" instead of nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("error parsing duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names for
// the optional config file.
type StructuredJSONConfig struct {
	App struct {
		KDFMemory  uint32 `json:"kdf_memory"`
		KDFTime    uint32 `json:"kdf_time"`
		KDFThreads uint8  `json:"kdf_threads"`
		KDFKeyLen  uint32 `json:"kdf_key_len"`
		Version    string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DataDir string `json:"data_dir"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding a json file: %w", err)
	}

	return &StructuredConfig{
		App: App{
			KDFMemory:  jsonCfg.App.KDFMemory,
			KDFTime:    jsonCfg.App.KDFTime,
			KDFThreads: jsonCfg.App.KDFThreads,
			KDFKeyLen:  jsonCfg.App.KDFKeyLen,
			Version:    jsonCfg.App.Version,
		},
		Storage: Storage{
			DataDir: jsonCfg.Storage.DataDir,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}, nil
}
