package main

import (
	"log"
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	emailsvc "github.com/trezcool/shule/services/email"
	eventsvc "github.com/trezcool/shule/services/events"
	logsvc "github.com/trezcool/shule/services/logger"
	dummydb "github.com/trezcool/shule/storage/database/dummy"
)

func main() {
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	db, err := dummydb.Open()
	if err != nil {
		logger.Fatal("opening database", err)
	}
	if err := dummydb.Seed(db); err != nil {
		logger.Fatal("seeding database", err)
	}

	// start CLI
	cli := commandLine{
		app: school.New(school.Deps{
			Config:   conf,
			Logger:   logger,
			Mailer:   emailsvc.NewConsoleService(conf, logger),
			Events:   eventsvc.NewLogPublisher(logger),
			Sessions: session.NewMemoryStore(),
			Repos:    dummydb.NewRepositories(db),
		}),
		out: os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
