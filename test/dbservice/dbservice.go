//go:build integration

package dbservice

import (
	"context"
	"log"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
	"github.com/neo4j/neo4j-schema-extractor/internal/config"
	"github.com/neo4j/neo4j-schema-extractor/internal/snapshot"
	"github.com/neo4j/neo4j-schema-extractor/test/containerrunner"
)

type dbService struct {
	driver       *neo4j.Driver
	driverOnce   sync.Once // Ensures driver is initialized exactly once
	useContainer bool
}

func NewDBService() *dbService {
	useContainer := config.GetEnvWithDefault("USE_CONTAINER", "true") == "true"
	log.Printf("Testing using container: %t", useContainer)
	return &dbService{
		driver:       nil,
		useContainer: useContainer,
	}
}

func (dbs *dbService) Start(ctx context.Context) {
	if dbs.useContainer {
		containerrunner.Start(ctx)
	}
}

func (dbs *dbService) Stop(ctx context.Context) {
	if dbs.useContainer {
		containerrunner.Close(ctx)
		return
	}
	if dbs.driver != nil {
		if err := (*dbs.driver).Close(ctx); err != nil {
			log.Printf("Warning: failed to close driver: %v", err)
		}
	}
}

// GetDriver returns the driver used to seed and clean up test data
func (dbs *dbService) GetDriver() *neo4j.Driver {
	dbs.driverOnce.Do(func() {
		if dbs.useContainer {
			dbs.driver = containerrunner.GetDriver()
			return
		}

		cfg := dbs.GetDriverConf()
		drv, err := neo4j.NewDriver(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
		if err != nil {
			log.Fatalf("failed to create driver: %v", err)
		}
		dbs.driver = &drv
	})

	return dbs.driver
}

// GetDriverConf returns a configuration pointing at the test database
func (dbs *dbService) GetDriverConf() *config.Config {
	if dbs.useContainer {
		return containerrunner.GetDriverConf()
	}

	return &config.Config{
		URI:          config.GetEnvWithDefault("NEO4J_URI", "bolt://localhost:7687"),
		Username:     config.GetEnvWithDefault("NEO4J_USERNAME", "neo4j"),
		Password:     config.GetEnvWithDefault("NEO4J_PASSWORD", "password"),
		Database:     config.GetEnvWithDefault("NEO4J_DATABASE", "neo4j"),
		LogLevel:     "info",
		LogFormat:    "text",
		SampleSize:   config.DefaultSampleSize,
		OutputPath:   config.DefaultOutputPath,
		OutputFormat: snapshot.FormatJSON,
	}
}
