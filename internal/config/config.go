package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/config/appconfig"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

var defaultQueryPoint = []float64{5.1, 3.5, 1.4, 0.2}

const defaultK = 3

type Config struct {
	GrpcAddr  string `yaml:"grpcAddr"`
	HttpAddr  string `yaml:"httpAddr"`
	LogLevel  string `yaml:"logLevel"`
	DataDir   string `yaml:"dataDir"`
	AclModel  string `yaml:"aclModel"`
	AclPolicy string `yaml:"aclPolicy"`

	Segment Segment `yaml:"segment"`
	KNN     KNN     `yaml:"knn"`
}

type Segment struct {
	MaxIndexBytes uint64 `yaml:"maxIndexBytes"`
	MaxStoreBytes uint64 `yaml:"maxStoreBytes"`
	InitialOffset uint64 `yaml:"initialOffset"`
}

type KNN struct {
	QueryPoint    []float64 `yaml:"queryPoint"`
	K             int       `yaml:"k"`
	SkipMalformed bool      `yaml:"skipMalformed"`
	Combine       bool      `yaml:"combine"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		GrpcAddr: ":8400",
		HttpAddr: ":8000",
		LogLevel: "info",
		Segment: Segment{
			MaxIndexBytes: 1024,
			MaxStoreBytes: 1024,
		},
		KNN: KNN{
			QueryPoint: append([]float64(nil), defaultQueryPoint...),
			K:          defaultK,
		},
	}
}

// Load reads the configuration file at path on top of Default.
//
// ".pkl" files are evaluated with pkl, ".yaml" and ".yml" files are decoded
// as YAML. An empty path yields Default.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pkl":
		app, err := appconfig.LoadFromPath(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg.merge(FromAppConfig(app))

	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var fromFile Config
		if err := yaml.NewDecoder(f).Decode(&fromFile); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg.merge(&fromFile)

	default:
		return nil, fmt.Errorf("%w: unknown config file type %q", ErrInvalid, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromAppConfig converts the pkl-evaluated configuration.
func FromAppConfig(app *appconfig.AppConfig) *Config {
	cfg := &Config{
		GrpcAddr:  app.GrpcAddr,
		HttpAddr:  app.HttpAddr,
		LogLevel:  app.LogLevel,
		DataDir:   app.DataDir,
		AclModel:  app.AclModel,
		AclPolicy: app.AclPolicy,
	}

	if s := app.Segment; s != nil {
		cfg.Segment = Segment{
			MaxIndexBytes: uint64(s.MaxIndexBytes),
			MaxStoreBytes: uint64(s.MaxStoreBytes),
			InitialOffset: uint64(s.InitialOffset),
		}
	}

	if k := app.Knn; k != nil {
		cfg.KNN = KNN{
			QueryPoint:    k.QueryPoint,
			K:             k.K,
			SkipMalformed: k.SkipMalformed,
			Combine:       k.Combine,
		}
	}

	return cfg
}

// merge overwrites fields of c with the non-zero fields of o.
func (c *Config) merge(o *Config) {
	setString := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	setUint := func(dst *uint64, src uint64) {
		if src != 0 {
			*dst = src
		}
	}

	setString(&c.GrpcAddr, o.GrpcAddr)
	setString(&c.HttpAddr, o.HttpAddr)
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.DataDir, o.DataDir)
	setString(&c.AclModel, o.AclModel)
	setString(&c.AclPolicy, o.AclPolicy)

	setUint(&c.Segment.MaxIndexBytes, o.Segment.MaxIndexBytes)
	setUint(&c.Segment.MaxStoreBytes, o.Segment.MaxStoreBytes)
	setUint(&c.Segment.InitialOffset, o.Segment.InitialOffset)

	if len(o.KNN.QueryPoint) != 0 {
		c.KNN.QueryPoint = append([]float64(nil), o.KNN.QueryPoint...)
	}
	if o.KNN.K != 0 {
		c.KNN.K = o.KNN.K
	}
	c.KNN.SkipMalformed = c.KNN.SkipMalformed || o.KNN.SkipMalformed
	c.KNN.Combine = c.KNN.Combine || o.KNN.Combine
}

func (c *Config) Validate() error {
	if c.KNN.K < 1 {
		return fmt.Errorf("%w: k must be positive, got %d", ErrInvalid, c.KNN.K)
	}
	if len(c.KNN.QueryPoint) == 0 {
		return fmt.Errorf("%w: query point is empty", ErrInvalid)
	}
	if (c.AclModel == "") != (c.AclPolicy == "") {
		return fmt.Errorf("%w: aclModel and aclPolicy must be set together", ErrInvalid)
	}
	return nil
}
