package main

import (
	"fmt"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
	logsvc "github.com/trezcool/classdesk/services/logger"
	"github.com/trezcool/classdesk/storage/database"
	boiledrepos "github.com/trezcool/classdesk/storage/database/sqlboiler"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZapLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	logger := zl.Named("admin")

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal("setting up database", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	if err := db.Ping(); err != nil {
		logger.Fatal("pinging database", err)
	}

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	leave.InitValidators(validate, translator)

	usrSvc := user.NewService(boiledrepos.NewUserRepository(db))

	// start CLI
	cli := commandLine{
		db:         db,
		users:      usrSvc,
		validate:   validate,
		translator: translator,
		seeder: database.Seeder{
			Users:       usrSvc,
			Assignments: assignment.NewService(boiledrepos.NewAssignmentRepository(db)),
			Submissions: submission.NewService(boiledrepos.NewSubmissionRepository(db)),
			Schedules:   schedule.NewService(boiledrepos.NewScheduleRepository(db)),
			Leaves:      leave.NewService(boiledrepos.NewLeaveRepository(db)),
			Logger:      logger,
		},
	}
	err = cli.run(os.Args)
	_ = db.Close()
	_ = zl.Sync()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}
