// SPDX-License-Identifier: ice License 1.0

package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/ice-blockchain/analytics/config"
)

// .
var (
	//nolint:gochecknoglobals // We need only one log for the app, hence it is global.
	logger *zerolog.Logger
)

//nolint:gochecknoinits // Log is global, so it's initialization can be done in init.
func init() {
	var appCfg cfg
	config.MustLoadFromKey(configKey, &appCfg)
	if strings.TrimSpace(appCfg.Level) == "" {
		appCfg.Level = defaultLevel
	}
	isJSON := strings.EqualFold(appCfg.Encoder, jsonEncoder)

	zerolog.DisableSampling(true)
	zerolog.ErrorStackMarshaler = errorStackMarshaller //nolint:reassign // It is called by an init.
	zerolog.InterfaceMarshalFunc = json.Marshal
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	var err error
	if logger, err = buildLogger(os.Stderr, isJSON, appCfg.Level); err != nil {
		panic(errors.Wrap(err, "failed to build logger"))
	}
	log.SetFlags(0)
	log.SetOutput(logger)
}

func buildLogger(out io.Writer, isJSON bool, level string) (*zerolog.Logger, error) { //nolint:revive // Control coupling is intended here.
	logWriter := out
	if !isJSON {
		logWriter = &zerolog.ConsoleWriter{
			Out:          out,
			TimeFormat:   time.RFC3339Nano,
			PartsOrder:   []string{zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.MessageFieldName},
			PartsExclude: []string{zerolog.ErrorStackFieldName, zerolog.CallerFieldName},
		}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid logger level %q", level)
	}
	lgr := zerolog.New(logWriter).With().Timestamp().Stack().Logger().Level(lvl)

	return &lgr, nil
}

func errorStackMarshaller(err error) any {
	frames, ok := pkgerrors.MarshalStack(err).([]map[string]string)
	if !ok || len(frames) <= stackFramesToSkip {
		return nil
	}
	stacks := make([]string, 0, len(frames)-stackFramesToSkip)
	for _, frame := range frames[:len(frames)-stackFramesToSkip] {
		stacks = append(stacks, fmt.Sprintf("%s:%s:%s",
			frame[pkgerrors.StackSourceFileName],
			frame[pkgerrors.StackSourceLineName],
			frame[pkgerrors.StackSourceFunctionName]))
	}

	return strings.Join(stacks, "<<")
}

// Fields are key/value pairs: Debug("msg", "key1", val1, "key2", val2).
func Debug(msg string, fields ...any) {
	withFields(logger.Debug(), fields).Msg(msg)
}

func Info(msg string, fields ...any) {
	withFields(logger.Info(), fields).Msg(msg)
}

func Warn(msg string, fields ...any) {
	withFields(logger.Warn(), fields).Msg(msg)
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	withFields(logger.Err(err), fields).Send()
}

func Fatal(anything any, fields ...any) {
	if anything == nil {
		return
	}
	withFields(logger.Fatal(), fields).Err(asError(anything)).Send()
}

// Panic is a no-op for nil, so callers can pass a possibly nil error straight in.
func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	err := asError(anything)
	withFields(logger.Panic(), fields).Err(err).Send()

	// Only reachable when the configured level filters panics out.
	panic(err)
}

func Level() string {
	return logger.GetLevel().String()
}

func withFields(event *zerolog.Event, fields []any) *zerolog.Event {
	if len(fields) == 0 {
		return event
	}

	return event.Fields(fields)
}

func asError(anything any) error {
	switch obj := anything.(type) {
	case error:
		return obj
	case string:
		return errors.New(obj)
	default:
		return errors.Errorf("%#v", obj)
	}
}
