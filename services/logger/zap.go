package logsvc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

type ZapLogger struct {
	l *zap.Logger
}

var _ core.Logger = (*ZapLogger)(nil)

// NewZapLogger builds a development (console) logger in debug mode and a JSON production logger otherwise.
func NewZapLogger(conf *core.Config) (*ZapLogger, error) {
	var zl *zap.Logger
	var err error
	if conf.Debug || conf.TestMode {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return NewZap(zl.With(zap.String("app", conf.AppName), zap.String("env", conf.Env))), nil
}

func NewZap(zl *zap.Logger) *ZapLogger {
	return &ZapLogger{l: zl.WithOptions(zap.AddCallerSkip(1))}
}

// Named returns a child logger whose entries are tagged with name.
func (l ZapLogger) Named(name string) *ZapLogger {
	return &ZapLogger{l: l.l.Named(name)}
}

// NewNopLogger discards everything.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{l: zap.NewNop()}
}

// expected fmt: msg | error, map[string]interface{}, user.User
func fields(args []interface{}) []zap.Field {
	flds := make([]zap.Field, 0, len(args))
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			flds = append(flds, zap.Error(a))
		case user.User:
			flds = append(flds, zap.String("user_id", a.ID), zap.String("user_role", string(a.Role)))
		case map[string]interface{}:
			for k, v := range a {
				flds = append(flds, zap.Any(k, v))
			}
		default:
			flds = append(flds, zap.Any(fmt.Sprintf("arg%d", i), a))
		}
	}
	return flds
}

func (l ZapLogger) Debug(msg string, args ...interface{}) { l.l.Debug(msg, fields(args)...) }
func (l ZapLogger) Info(msg string, args ...interface{})  { l.l.Info(msg, fields(args)...) }
func (l ZapLogger) Warn(msg string, args ...interface{})  { l.l.Warn(msg, fields(args)...) }
func (l ZapLogger) Error(msg string, args ...interface{}) { l.l.Error(msg, fields(args)...) }
func (l ZapLogger) Fatal(msg string, args ...interface{}) { l.l.Fatal(msg, fields(args)...) }

func (l ZapLogger) Sync() error {
	return l.l.Sync()
}
