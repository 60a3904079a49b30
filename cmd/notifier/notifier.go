// Package notifier hosts the long-running risk notifier process.
package notifier

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"agentcore/src/database"
	"agentcore/src/executors"
)

type Notifier struct{}

func (n *Notifier) Start() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	// Initialize main (read/write) database
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to main database")
		return err
	}

	logrus.Info("Starting risk notifier loop")

	if err := executors.StartLoop(ctx); err != nil {
		logrus.WithError(err).Error("Notifier loop exited with error")
		return err
	}

	return nil
}
