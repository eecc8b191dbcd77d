package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pawpost/pawpost/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{name: "json info", level: "INFO", format: "json"},
		{name: "text debug", level: "DEBUG", format: "text"},
		{name: "bad level falls back to info", level: "shouting", format: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LoggingConfig{
				Level:  tt.level,
				Format: tt.format,
			}
			if err := InitLogger(cfg); err != nil {
				t.Fatalf("Failed to initialize logger: %v", err)
			}
			if Logger == nil {
				t.Fatal("InitLogger() left the global logger nil")
			}
		})
	}
}

func TestJSONOutputFields(t *testing.T) {
	// Build a core with the production encoder config over a buffer, same
	// shape InitLogger produces for the json format
	var buf bytes.Buffer

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.InfoLevel)
	logger := zap.New(core)

	logger.Info("test message", zap.String("key", "value"))

	var logObj map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logObj); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if logObj["msg"] != "test message" {
		t.Errorf("Expected message 'test message', got: %v", logObj["msg"])
	}
	if logObj["key"] != "value" {
		t.Errorf("Expected field 'key'='value', got: %v", logObj["key"])
	}
	if _, ok := logObj["ts"]; !ok {
		t.Error("Expected 'ts' field in log output")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.InfoLevel)

	oldLogger := Logger
	Logger = zap.New(core)
	defer func() { Logger = oldLogger }()

	WithComponent("feed-composer").Info("composed")

	var logObj map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logObj); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if logObj["component"] != "feed-composer" {
		t.Errorf("Expected component 'feed-composer', got: %v", logObj["component"])
	}
}
