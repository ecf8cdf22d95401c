package logger

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

// PgxTracer routes pgx query traces to l at debug level.
func PgxTracer(l *zap.Logger) *tracelog.TraceLog {
	sugar := l.Named("pgx").Sugar()
	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(_ context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
			kv := make([]any, 0, len(data)*2+2)
			kv = append(kv, "pgx_level", lvl.String())
			for k, v := range data {
				kv = append(kv, k, v)
			}
			if lvl <= tracelog.LogLevelError && lvl != tracelog.LogLevelNone {
				sugar.Errorw(msg, kv...)
				return
			}
			sugar.Debugw(msg, kv...)
		}),
		LogLevel: tracelog.LogLevelTrace,
	}
}
