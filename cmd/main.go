package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"agentcore/cmd/notifier"
	"agentcore/cmd/seeder"
	"agentcore/src/database"
	"agentcore/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Agentcore CMD"
	app.Usage = "The agentcore command line interface"

	app.Commands = []cli.Command{
		serverCMD,
		notifierCMD,
		seedCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serverCMD = cli.Command{
		Name:        "server",
		Usage:       "run API Server",
		Action:      serverAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the admin API server`,
	}
	notifierCMD = cli.Command{
		Name:        "notifier",
		Usage:       "run Risk Notifier",
		Action:      notifierAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the risk notifier loop`,
	}
	seedCMD = cli.Command{
		Name:        "seed",
		Usage:       "run Seed",
		Action:      seedAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Insert the default configurations and starter agents`,
	}
)

func serverAction(_ *cli.Context) error {

	logrus.Info("Starting server CMD")
	logrus.WithField("cmd", "server")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.InitReadOnlyDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	server.StartServer(server.GetConfig().Port)

	return nil
}

func notifierAction(_ *cli.Context) error {

	logrus.Info("Starting notifier CMD")
	logrus.WithField("cmd", "notifier")

	n := &notifier.Notifier{}
	err := n.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func seedAction(_ *cli.Context) error {

	logrus.Info("Starting seed CMD")
	logrus.WithField("cmd", "seed")

	s := &seeder.Seeder{}
	err := s.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
