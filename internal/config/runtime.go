package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Runtime struct {
	HTTPAddr           string `env:"HTTP_ADDR" envDefault:":8080"`
	DataPath           string `env:"DATA_PATH" envDefault:"data.csv"`
	DataFormat         string `env:"DATA_FORMAT" envDefault:"csv"`
	SQLiteTable        string `env:"SQLITE_TABLE" envDefault:"records"`
	EngineSpecPath     string `env:"ENGINE_SPEC_PATH"`
	ModelCacheMaxItems int    `env:"MODEL_CACHE_MAX_ITEMS" envDefault:"64"`
	ObsBuffer          int    `env:"OBS_BUFFER" envDefault:"4096"`
	DecideParallelism  int    `env:"DECIDE_PARALLELISM" envDefault:"1"`
}

func Load() (Runtime, error) {
	var r Runtime
	if err := env.Parse(&r); err != nil {
		return Runtime{}, fmt.Errorf("parse env: %w", err)
	}
	return r, nil
}
