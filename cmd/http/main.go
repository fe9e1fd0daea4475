package main

import (
	"log"
	"net/http"

	"decisionnet/internal/app"
	"decisionnet/internal/bayes/cache"
	"decisionnet/internal/config"
	"decisionnet/internal/dataset"
	"decisionnet/internal/decision"
	"decisionnet/internal/engineconfig"
	"decisionnet/internal/transport/httptransport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ds, err := dataset.Load(cfg.DataFormat, cfg.DataPath, cfg.SQLiteTable)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	var defaults *app.DecisionSpec
	if cfg.EngineSpecPath != "" {
		spec, err := engineconfig.Load(cfg.EngineSpecPath)
		if err != nil {
			log.Fatalf("load engine spec: %v", err)
		}
		defaults = &app.DecisionSpec{
			DecisionVariables: spec.DecisionVariables,
			UtilityVariable:   spec.Utility.Variable,
			UtilityScores:     spec.Utility.Scores,
			Constraint:        spec.Constraint,
		}
	}

	observer := decision.NewAsyncQueryLatencyObserver(decision.NewQueryLatencyLogger(log.Default()), cfg.ObsBuffer)
	defer observer.Close()

	svc := app.NewService(ds, cache.NewInMemory(cfg.ModelCacheMaxItems), defaults,
		decision.WithQueryLatencyObserver(observer),
		decision.WithParallelism(cfg.DecideParallelism),
	)
	h := httptransport.NewHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/decide", h.Decide)

	log.Printf("listening on %s (dataset %s: %d records, %d variables)", cfg.HTTPAddr, cfg.DataPath, ds.NumRecords(), ds.NumVariables())
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, mux))
}
