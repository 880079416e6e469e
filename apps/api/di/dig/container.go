package dig_container

import (
	"log"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/classdesk/actions"
	echoapi "github.com/trezcool/classdesk/apps/api/echo"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/assignment"
	"github.com/trezcool/classdesk/core/leave"
	"github.com/trezcool/classdesk/core/schedule"
	"github.com/trezcool/classdesk/core/submission"
	"github.com/trezcool/classdesk/core/user"
	"github.com/trezcool/classdesk/pages"
	cachesvc "github.com/trezcool/classdesk/services/cache"
	emailsvc "github.com/trezcool/classdesk/services/email"
	eventsvc "github.com/trezcool/classdesk/services/events"
	livesvc "github.com/trezcool/classdesk/services/live"
	logsvc "github.com/trezcool/classdesk/services/logger"
	"github.com/trezcool/classdesk/storage/database"
	dummydb "github.com/trezcool/classdesk/storage/database/dummy"
	boiledrepos "github.com/trezcool/classdesk/storage/database/sqlboiler"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Repositories are backed by Postgres, or by the in-memory store when DB is nil.
	Repositories struct {
		dig.Out
		DB          *sqlx.DB
		Users       user.Repository
		Assignments assignment.Repository
		Submissions submission.Repository
		Schedules   schedule.Repository
		Leaves      leave.Repository
	}

	// Revalidation holds the sinks notified after mutations. Publisher is nil without Kafka brokers.
	Revalidation struct {
		dig.In
		Cache     cachesvc.Cache
		Hub       *livesvc.Hub
		Publisher *eventsvc.Publisher
	}

	ActionsParam struct {
		dig.In
		Validate    *validator.Validate
		Translator  ut.Translator
		Users       *user.Service
		Assignments *assignment.Service
		Submissions *submission.Service
		Schedules   *schedule.Service
		Leaves      *leave.Service
		Mail        core.EmailService
		Revalidator core.Revalidator
		Logger      core.Logger
	}

	ServerParam struct {
		dig.In
		Conf       *core.Config
		Users      *user.Service
		Actions    *actions.Actions
		Pages      *pages.Service
		Hub        *livesvc.Hub
		Validate   *validator.Validate
		Translator ut.Translator
		Logger     core.Logger
	}
)

func newZapLogger(conf *core.Config) (*logsvc.ZapLogger, error) {
	return logsvc.NewZapLogger(conf)
}

func newLogger(conf *core.Config, zl *logsvc.ZapLogger) core.Logger {
	logger := logsvc.NewRollbarLogger(zl.Named("api"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config, zl *logsvc.ZapLogger) core.Logger {
	logger := logsvc.NewRollbarLogger(zl.Named("db"), conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) (Repositories, error) {
	if conf.Database.UsesMemory() {
		mem, err := dummydb.Open()
		if err != nil {
			return Repositories{}, errors.Wrap(err, "opening in-memory store")
		}
		loggerParam.Logger.Info("using the in-memory store")
		return Repositories{
			Users:       dummydb.NewUserRepository(mem),
			Assignments: dummydb.NewAssignmentRepository(mem),
			Submissions: dummydb.NewSubmissionRepository(mem),
			Schedules:   dummydb.NewScheduleRepository(mem),
			Leaves:      dummydb.NewLeaveRepository(mem),
		}, nil
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		return Repositories{}, errors.Wrap(err, "setting up database")
	}
	return Repositories{
		DB:          db,
		Users:       boiledrepos.NewUserRepository(db),
		Assignments: boiledrepos.NewAssignmentRepository(db),
		Submissions: boiledrepos.NewSubmissionRepository(db),
		Schedules:   boiledrepos.NewScheduleRepository(db),
		Leaves:      boiledrepos.NewLeaveRepository(db),
	}, nil
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	leave.InitValidators(validate, translator)
	return validate
}

// newCache uses Redis when configured and falls back to process memory.
func newCache(conf *core.Config, logger core.Logger) (cachesvc.Cache, error) {
	if conf.Cache.RedisURL == "" {
		return cachesvc.NewMemoryCache(), nil
	}
	rdb, err := cachesvc.NewRedisClient(conf.Cache.RedisURL)
	if err != nil {
		return nil, err
	}
	return cachesvc.NewRedisCache(rdb, logger), nil
}

func newPublisher(conf *core.Config) *eventsvc.Publisher {
	if len(conf.Kafka.Brokers) == 0 {
		return nil
	}
	return eventsvc.NewPublisher(conf)
}

func newRevalidator(r Revalidation) core.Revalidator {
	revs := core.Revalidators{r.Cache, r.Hub}
	if r.Publisher != nil {
		revs = append(revs, r.Publisher)
	}
	return revs
}

func newActions(p ActionsParam) *actions.Actions {
	return actions.New(actions.Deps{
		Validate:    p.Validate,
		Translator:  p.Translator,
		Users:       p.Users,
		Assignments: p.Assignments,
		Submissions: p.Submissions,
		Schedules:   p.Schedules,
		Leaves:      p.Leaves,
		Mail:        p.Mail,
		Revalidator: p.Revalidator,
		Logger:      p.Logger,
	})
}

func newPages(conf *core.Config, acts *actions.Actions, cache cachesvc.Cache, logger core.Logger) *pages.Service {
	return pages.NewService(acts, cache, cachesvc.Key, conf, logger)
}

func newServer(p ServerParam) *echoapi.Server {
	return echoapi.NewServer(p.Conf, echoapi.Deps{
		Users:      p.Users,
		Actions:    p.Actions,
		Pages:      p.Pages,
		Hub:        p.Hub,
		Validate:   p.Validate,
		Translator: p.Translator,
		Logger:     p.Logger,
	})
}

// New returns a new dependency injection dig.Container.
// newConfig is core.NewConfig outside of tests.
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newZapLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(user.NewService))
	must(c.Provide(assignment.NewService))
	must(c.Provide(submission.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(leave.NewService))
	must(c.Provide(newEmailService))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newCache))
	must(c.Provide(livesvc.NewHub))
	must(c.Provide(newPublisher))
	must(c.Provide(newRevalidator))
	must(c.Provide(newActions))
	must(c.Provide(newPages))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
