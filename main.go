package main

import (
	"context"
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	"steamcycle/config"
	"steamcycle/cycle"
	"steamcycle/scenario"
	"steamcycle/server"
	"steamcycle/steam"
)

func main() {
	confPath := flag.String("conf", config.DefaultPath, "ini configuration file")
	scenarioPath := flag.String("scenario", "", "yaml file listing the cycles to evaluate")
	serve := flag.Bool("serve", false, "start the websocket server after the scenario")
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.SetupLogging(); err != nil {
		log.Fatal(err)
	}
	tables, err := steam.LoadTables(cfg.Steam.SaturationTable, cfg.Steam.SuperheatedTable)
	if err != nil {
		log.Fatal(err)
	}
	resolver := steam.NewResolver(tables, cfg.Steam.Options())

	var sc *scenario.File
	if *scenarioPath == "" {
		sc, err = scenario.Parse([]byte(scenario.Default))
	} else {
		sc, err = scenario.Load(*scenarioPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	results, err := cycle.Sweep(context.Background(), resolver, sc.Specs(), cfg.Cycle.Workers)
	if err != nil {
		log.Fatal(err)
	}
	for _, res := range results {
		fmt.Println(cycle.Summary(res))
	}

	if *serve {
		if err := server.NewServer(cfg, resolver).Serve(); err != nil {
			log.Fatal("ListenAndServe: ", err)
		}
	}
}
