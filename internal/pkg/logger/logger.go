package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap,
// com saída JSON estruturada.
type ZapLogger struct {
	z *zap.Logger
}

// NewLogger cria e retorna uma nova instância do Logger.
// Níveis aceitos: debug, info, warn, error. Valores desconhecidos viram info.
func NewLogger(level string) Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		lvl,
	)

	return &ZapLogger{z: zap.New(core)}
}

// NewFromZap permite injetar um *zap.Logger já configurado (e.g., zaptest/observer).
func NewFromZap(z *zap.Logger) Logger {
	return &ZapLogger{z: z}
}

// NewNop descarta tudo; usado nos testes.
func NewNop() Logger {
	return &ZapLogger{z: zap.NewNop()}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.z.Error(msg, zap.Error(err))
}

// Fatal registra e encerra o processo.
func (l *ZapLogger) Fatal(msg string, err error) {
	l.z.Fatal(msg, zap.Error(err))
}

// Sync descarrega buffers pendentes; chamado no encerramento.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}
