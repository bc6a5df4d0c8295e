// main.go
//
// A catalog read service for application listings, collections and statistics
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of appcatalog.
// appcatalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// appcatalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with appcatalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/appcatalog/data"
	"github.com/localnerve/appcatalog/internal/containers"
	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/localnerve/appcatalog/internal/refresh"
	"github.com/localnerve/appcatalog/internal/stats"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var noSeed bool
	flag.BoolVar(&noSeed, "empty", false, "do not seed the demo catalog")
	flag.Parse()

	usage := `
Run a redis testcontainer seeded with the demo catalog, for running the appcatalog server locally.

Usage:

testcontainers [-h] [-empty] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (REDIS_IMAGE, LOG_LEVEL)

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			logrus.Fatalf("Failed to load environment variables: %v", err)
		}
	}
	log := logging.New(os.Getenv("LOG_LEVEL"), "text")

	ctx := context.Background()
	redisContainer, err := containers.StartRedis(ctx, os.Getenv("REDIS_IMAGE"))
	if err != nil {
		log.Fatalf("Failed to create test container: %v", err)
	}

	if !noSeed {
		if err := seed(ctx, redisContainer.URL, log); err != nil {
			_ = redisContainer.Terminate(ctx)
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	fmt.Printf("REDIS_URL=%s\n", redisContainer.URL)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-sigs
	log.Infof("Received signal: %v, terminating test container...", sig)
	if err := redisContainer.Terminate(ctx); err != nil {
		log.WithError(err).Error("Failed to terminate redis")
	}
}

// seed loads the demo catalog and runs one refresh so every index is populated
func seed(ctx context.Context, url string, log *logrus.Logger) error {
	s, err := store.NewRedisStore(url)
	if err != nil {
		return err
	}
	defer s.Close()

	catalog, err := data.LoadCatalog()
	if err != nil {
		return err
	}
	if err := catalog.Seed(ctx, s); err != nil {
		return err
	}

	picks := make([]string, 0, len(catalog.Picks))
	for name := range catalog.Picks {
		picks = append(picks, name)
	}
	r := refresh.New(s, refresh.NewIndexIngester(s, log), []refresh.Updater{
		refresh.NewSummaryUpdater(s),
		refresh.NewPicksUpdater(s, picks...),
		stats.NewStoreProvider(s, log),
	}, nil, log)
	result, err := r.Run(ctx)
	if err != nil {
		return err
	}
	log.WithField("apps", result.TotalApps).Info("Demo catalog seeded")
	return nil
}
