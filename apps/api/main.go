package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // /debug/pprof

	"github.com/jmoiron/sqlx"

	dig_container "github.com/trezcool/classdesk/apps/api/di/dig"
	echoapi "github.com/trezcool/classdesk/apps/api/echo"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
	appfs "github.com/trezcool/classdesk/fs"
	cachesvc "github.com/trezcool/classdesk/services/cache"
	eventsvc "github.com/trezcool/classdesk/services/events"
	livesvc "github.com/trezcool/classdesk/services/live"
	logsvc "github.com/trezcool/classdesk/services/logger"
	"github.com/trezcool/classdesk/storage/database"
)

func main() {
	c := dig_container.New(core.NewConfig)

	must(c.Invoke(func(
		conf *core.Config,
		zl *logsvc.ZapLogger,
		apiLogger core.Logger,
		dbLoggerParam dig_container.DBLoggerParam,
		db *sqlx.DB,
		usrSvc *user.Service,
		asgSvc *assignment.Service,
		subSvc *submission.Service,
		schSvc *schedule.Service,
		lvSvc *leave.Service,
		cache cachesvc.Cache,
		hub *livesvc.Hub,
		publisher *eventsvc.Publisher,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		core.ParseEmailTemplates(appfs.FS, false, apiLogger)

		dbLogger := dbLoggerParam.Logger
		defer func() {
			_ = zl.Sync()
		}()
		defer func() {
			if rl, ok := apiLogger.(*logsvc.RollbarLogger); ok {
				rl.Close()
			}
		}()
		if db != nil {
			defer func() {
				if err := db.Close(); err != nil {
					dbLogger.Error("Failed to close", err)
				}
			}()
		}
		if closer, ok := cache.(interface{ Close() error }); ok {
			defer func() { _ = closer.Close() }()
		}
		if publisher != nil {
			defer func() {
				if err := publisher.Close(); err != nil {
					apiLogger.Error("Failed to close kafka writer", err)
				}
			}()
		}
		defer apiLogger.Info("Application stopped")

		if conf.Database.UsesMemory() {
			seeder := database.Seeder{
				Users:       usrSvc,
				Assignments: asgSvc,
				Submissions: subSvc,
				Schedules:   schSvc,
				Leaves:      lvSvc,
				Logger:      dbLogger,
			}
			if err := seeder.Seed(context.Background()); err != nil {
				dbLogger.Fatal(fmt.Sprintf("seeding in-memory store: %v", err), err)
			}
		}

		ctx, stopHub := context.WithCancel(context.Background())
		defer stopHub()
		go hub.Run(ctx)

		// =========================================================================
		// Start Debug Service
		//
		// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
		// /debug/vars - Added to the default mux by importing the expvar package.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				apiLogger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		go func() {
			server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			apiLogger.Error(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
