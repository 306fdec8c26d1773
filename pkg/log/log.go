package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application-wide logging interface.
// Convention: context first, so call sites can later carry request-scoped fields.
type Logger interface {
	Debug(ctx context.Context, args ...any)
	Debugf(ctx context.Context, template string, args ...any)
	Info(ctx context.Context, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warn(ctx context.Context, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Error(ctx context.Context, args ...any)
	Errorf(ctx context.Context, template string, args ...any)
	Fatal(ctx context.Context, args ...any)
	Fatalf(ctx context.Context, template string, args ...any)
	DPanic(ctx context.Context, args ...any)
	DPanicf(ctx context.Context, template string, args ...any)
	Panic(ctx context.Context, args ...any)
	Panicf(ctx context.Context, template string, args ...any)
}

// ZapConfig configures the zap-backed logger.
type ZapConfig struct {
	Level        string // debug | info | warn | error
	Mode         string // debug | production
	Encoding     string // console | json
	ColorEnabled bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// Init builds the zap-backed Logger from config.
func Init(cfg ZapConfig) Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Mode == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if cfg.ColorEnabled && zapCfg.Encoding == "console" {
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}

	return &zapLogger{sugar: l.Sugar()}
}

func (z *zapLogger) Debug(ctx context.Context, args ...any)  { z.sugar.Debug(args...) }
func (z *zapLogger) Info(ctx context.Context, args ...any)   { z.sugar.Info(args...) }
func (z *zapLogger) Warn(ctx context.Context, args ...any)   { z.sugar.Warn(args...) }
func (z *zapLogger) Error(ctx context.Context, args ...any)  { z.sugar.Error(args...) }
func (z *zapLogger) Fatal(ctx context.Context, args ...any)  { z.sugar.Fatal(args...) }
func (z *zapLogger) DPanic(ctx context.Context, args ...any) { z.sugar.DPanic(args...) }
func (z *zapLogger) Panic(ctx context.Context, args ...any)  { z.sugar.Panic(args...) }

func (z *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	z.sugar.Debugf(template, args...)
}

func (z *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	z.sugar.Infof(template, args...)
}

func (z *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	z.sugar.Warnf(template, args...)
}

func (z *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	z.sugar.Errorf(template, args...)
}

func (z *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	z.sugar.Fatalf(template, args...)
}

func (z *zapLogger) DPanicf(ctx context.Context, template string, args ...any) {
	z.sugar.DPanicf(template, args...)
}

func (z *zapLogger) Panicf(ctx context.Context, template string, args ...any) {
	z.sugar.Panicf(template, args...)
}
