package main

import (
	"fmt"
	"log"
	"os"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/notify"
	"github.com/umoja/portal/core/session"
	logsvc "github.com/umoja/portal/services/logger"
	filestore "github.com/umoja/portal/storage/session/file"
	inmemstore "github.com/umoja/portal/storage/session/inmem"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewConsoleLogger(conf)
	} else {
		std := log.New(os.Stderr, "PORTAL : ", log.LstdFlags|log.Lmicroseconds)
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	var store session.Store
	store, err := filestore.NewStore(conf)
	if err != nil {
		logger.Warn("session store unavailable, falling back to memory", err)
		store = inmemstore.NewStore()
	}

	api := apiclient.NewClient(conf, logger)
	ctrl := session.NewController(store, api, logger)
	ctrl.Restore()

	notes := notify.NewNotifier(0)

	cli := commandLine{
		conf:  conf,
		api:   api,
		ctrl:  ctrl,
		log:   logger,
		notes: notes,
	}
	err = cli.run(os.Args)

	// a one-shot command exits before any toast would auto-dismiss, so
	// drain the pending notifications to the terminal instead
	for _, note := range notes.Active() {
		fmt.Println(note.Message)
	}
	notes.Close()

	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
