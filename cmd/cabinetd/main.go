// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

package main

import (
	"fmt"

	"github.com/smaillet/cabinet/internal/config"
	"github.com/smaillet/cabinet/internal/crypto"
	httphandler "github.com/smaillet/cabinet/internal/handler/http"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/registry"
	"github.com/smaillet/cabinet/internal/server"
	"github.com/smaillet/cabinet/internal/service"
	"github.com/smaillet/cabinet/internal/session"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("cabinetd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	reg := registry.NewFileRegistry(cfg.Storage.DataDir, log)
	engine := crypto.NewCredentialEngine()
	sessions := session.NewHolder(log)

	services := service.NewServices(reg, engine, sessions, cfg.Storage.DataDir, cfg.App.KDFParams(), log)
	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()

	// the server has stopped accepting commands; drop key material too
	sessions.Close()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
