package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML config files.
type fileConfig struct {
	App struct {
		TokenSignKey         string       `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer          string       `json:"token_issuer" yaml:"token_issuer"`
		TokenAudience        string       `json:"token_audience" yaml:"token_audience"`
		AccessTokenDuration  Duration     `json:"access_token_duration" yaml:"access_token_duration"`
		RefreshTokenDuration Duration     `json:"refresh_token_duration" yaml:"refresh_token_duration"`
		HashKey              string       `json:"hash_key" yaml:"hash_key"`
		BcryptCost           int          `json:"bcrypt_cost" yaml:"bcrypt_cost"`
		SecureCookies        bool         `json:"secure_cookies" yaml:"secure_cookies"`
		Version              string       `json:"version" yaml:"version"`
		AccessPolicies       []AccessRule `json:"access_policies" yaml:"access_policies"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Cache struct {
		RedisAddress  string   `json:"redis_address" yaml:"redis_address"`
		RedisPassword string   `json:"redis_password" yaml:"redis_password"`
		RedisDB       int      `json:"redis_db" yaml:"redis_db"`
		RateLimit     int      `json:"rate_limit" yaml:"rate_limit"`
		RateWindow    Duration `json:"rate_window" yaml:"rate_window"`
	} `json:"cache" yaml:"cache"`

	Broker struct {
		NATSURL       string `json:"nats_url" yaml:"nats_url"`
		SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix"`
	} `json:"broker" yaml:"broker"`

	Telemetry struct {
		OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint"`
		Insecure     bool   `json:"otlp_insecure" yaml:"otlp_insecure"`
		ServiceName  string `json:"service_name" yaml:"service_name"`
	} `json:"telemetry" yaml:"telemetry"`

	Adapter struct {
		GoogleClientID     string   `json:"google_client_id" yaml:"google_client_id"`
		GoogleTokenInfoURL string   `json:"google_tokeninfo_url" yaml:"google_tokeninfo_url"`
		RequestTimeout     Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		TokenPruneSchedule string   `json:"token_prune_schedule" yaml:"token_prune_schedule"`
		TokenRetention     Duration `json:"token_retention" yaml:"token_retention"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a config file, choosing the decoder by extension.
// Files without a recognised extension are decoded as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(f, &fc)
	default:
		err = json.NewDecoder(f).Decode(&fc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}

	return fc.toStructured(), nil
}

func decodeYAML(r io.Reader, fc *fileConfig) error {
	err := yaml.NewDecoder(r).Decode(fc)
	if err == io.EOF {
		return nil
	}
	return err
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:         fc.App.TokenSignKey,
			TokenIssuer:          fc.App.TokenIssuer,
			TokenAudience:        fc.App.TokenAudience,
			AccessTokenDuration:  time.Duration(fc.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(fc.App.RefreshTokenDuration),
			HashKey:              fc.App.HashKey,
			BcryptCost:           fc.App.BcryptCost,
			SecureCookies:        fc.App.SecureCookies,
			Version:              fc.App.Version,
			AccessPolicies:       fc.App.AccessPolicies,
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Cache: Cache{
			RedisAddress:  fc.Cache.RedisAddress,
			RedisPassword: fc.Cache.RedisPassword,
			RedisDB:       fc.Cache.RedisDB,
			RateLimit:     fc.Cache.RateLimit,
			RateWindow:    time.Duration(fc.Cache.RateWindow),
		},
		Broker: Broker{
			NATSURL:       fc.Broker.NATSURL,
			SubjectPrefix: fc.Broker.SubjectPrefix,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: fc.Telemetry.OTLPEndpoint,
			Insecure:     fc.Telemetry.Insecure,
			ServiceName:  fc.Telemetry.ServiceName,
		},
		Adapter: Adapter{
			GoogleClientID:     fc.Adapter.GoogleClientID,
			GoogleTokenInfoURL: fc.Adapter.GoogleTokenInfoURL,
			RequestTimeout:     time.Duration(fc.Adapter.RequestTimeout),
		},
		Workers: Workers{
			TokenPruneSchedule: fc.Workers.TokenPruneSchedule,
			TokenRetention:     time.Duration(fc.Workers.TokenRetention),
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling
// from strings like "1h", "30s" in both JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
