// Package app holds the process-wide configuration of avrogen.
package app

import (
	"github.com/tencent-go/avrogen/converter"
	"github.com/tencent-go/avrogen/env"
	"github.com/tencent-go/avrogen/source"
)

type Config struct {
	env.Base
	OutputDir string `env:"AVROGEN_OUTPUT_DIR" default:"." description:"directory for generated .avsc files"`
	Suffix    string `env:"AVROGEN_SUFFIX,omitempty" default:"Dto" description:"class name suffix offered for conversion"`
	MaxDepth  int    `env:"AVROGEN_MAX_DEPTH" default:"64" description:"maximum record nesting"`
	Validate  bool   `env:"AVROGEN_VALIDATE" default:"false" description:"parse every generated schema"`
	Addr      string `env:"AVROGEN_ADDR" default:":8080" description:"listen address of the http server"`
}

var ConfigReaderBuilder = env.NewReaderBuilder[Config]()

var configReader = ConfigReaderBuilder.Build()

// Load reads the configuration and applies its logging settings.
func Load() (Config, error) {
	cfg, err := configReader.Parse()
	if err != nil {
		return cfg, err
	}
	cfg.SetupLogger()
	return cfg, nil
}

func (c Config) Policy() source.Policy {
	return source.Policy{Suffix: c.Suffix}
}

func (c Config) Converter() *converter.Converter {
	return converter.New(
		converter.WithMaxDepth(c.MaxDepth),
		converter.WithValidation(c.Validate),
	)
}
