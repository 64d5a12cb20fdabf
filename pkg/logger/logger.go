// Package logger 基于zap的结构化日志
//
// 配置项与config.LogConfig一一对应：
//   - level: debug | info | warn | error
//   - format: console（开发环境，彩色可读）| json（生产环境，便于ELK/Loki检索）
//   - output: stdout | stderr | /path/to/file
//   - enable_caller: 是否记录调用位置
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置（避免pkg依赖internal的config包）
type Options struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 创建zap Logger
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
		}
	}

	var cfg zap.Config
	switch opts.Format {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("无效的日志格式: %s", opts.Format)
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableCaller = !opts.EnableCaller

	output := opts.Output
	if output == "" {
		output = "stdout"
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Init 创建Logger并替换zap全局Logger，返回flush函数
func Init(opts Options) (func(), error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(l)
	return func() {
		_ = l.Sync()
		undo()
	}, nil
}
