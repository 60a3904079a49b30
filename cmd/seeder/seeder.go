// Package seeder hosts the one-shot bootstrap process.
package seeder

import (
	"context"

	"github.com/sirupsen/logrus"

	"agentcore/src/database"
	"agentcore/src/seed"
)

type Seeder struct{}

func (s *Seeder) Start() error {
	ctx := context.Background()

	// Initialize main (read/write) database
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to main database")
		return err
	}

	report, err := seed.Run(ctx, database.MainDB)
	if err != nil {
		logrus.WithError(err).Error("Seed run failed")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"configs_inserted": report.ConfigsInserted,
		"agents_inserted":  report.AgentsInserted,
	}).Info("Seed run finished")

	return nil
}
