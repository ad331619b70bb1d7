package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestInit(t *testing.T) {
	t.Run("default_config", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Config{
			Level:  slog.LevelInfo,
			JSON:   false,
			Output: &buf,
		}
		Init(cfg)

		logger := Logger()
		assert.NotNil(t, logger)
	})

	t.Run("json_config", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Config{
			Level:  slog.LevelDebug,
			JSON:   true,
			Output: &buf,
		}
		Init(cfg)
		assert.True(t, Debug)
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		cfg := Config{
			Level:  slog.LevelInfo,
			Output: nil,
		}
		Init(cfg)
		assert.NotNil(t, Logger())
	})
}

func TestInitDebug(t *testing.T) {
	InitDebug()
	assert.True(t, Debug)
}

func TestLogger(t *testing.T) {
	logger := Logger()
	assert.NotNil(t, logger)
}

func TestWith(t *testing.T) {
	logger := With("key", "value")
	assert.NotNil(t, logger)
}

func TestWithGroup(t *testing.T) {
	logger := WithGroup("test-group")
	assert.NotNil(t, logger)
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		Level:  slog.LevelDebug,
		JSON:   true,
		Output: &buf,
	})

	t.Run("info", func(t *testing.T) {
		buf.Reset()
		Info("test message", "key", "value")
		assert.Contains(t, buf.String(), "test message")
	})

	t.Run("debug", func(t *testing.T) {
		buf.Reset()
		DebugLog("debug message", "key", "value")
		assert.Contains(t, buf.String(), "debug message")
	})

	t.Run("warn", func(t *testing.T) {
		buf.Reset()
		Warn("warn message", "key", "value")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		Error("error message", "key", "value")
		assert.Contains(t, buf.String(), "error message")
	})
}

func TestContextLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		Level:  slog.LevelDebug,
		JSON:   true,
		Output: &buf,
	})

	ctx := context.Background()

	t.Run("info_context", func(t *testing.T) {
		buf.Reset()
		InfoContext(ctx, "test message", "key", "value")
		assert.Contains(t, buf.String(), "test message")
	})

	t.Run("debug_context", func(t *testing.T) {
		buf.Reset()
		DebugContext(ctx, "debug message", "key", "value")
		assert.Contains(t, buf.String(), "debug message")
	})

	t.Run("warn_context", func(t *testing.T) {
		buf.Reset()
		WarnContext(ctx, "warn message", "key", "value")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("error_context", func(t *testing.T) {
		buf.Reset()
		ErrorContext(ctx, "error message", "key", "value")
		assert.Contains(t, buf.String(), "error message")
	})
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{
		Level:  slog.LevelDebug,
		JSON:   true,
		Output: &buf,
	})

	buf.Reset()
	LogOperation("test-op", "extra", "data")
	assert.Contains(t, buf.String(), "test-op")
}

func TestKeyConstants(t *testing.T) {
	assert.Equal(t, "request_id", KeyRequestID)
	assert.Equal(t, "op", KeyOperation)
	assert.Equal(t, "duration_ms", KeyDuration)
	assert.Equal(t, "error", KeyError)
	assert.Equal(t, "block", KeyBlock)
	assert.Equal(t, "event_id", KeyEventID)
	assert.Equal(t, "date", KeyDateKey)
	assert.Equal(t, "job", KeyJob)
	assert.Equal(t, "webhook", KeyWebhook)
	assert.Equal(t, "status", KeyStatus)
	assert.Equal(t, "count", KeyCount)
}

// =============================================================================
// Mask Tests
// =============================================================================

func TestMaskURL(t *testing.T) {
	t.Run("short_url_untouched", func(t *testing.T) {
		url := "https://example.com"
		assert.Equal(t, url, MaskURL(url))
	})

	t.Run("long_url_masked", func(t *testing.T) {
		url := "https://hooks.example.com/services/secret-token-12345"
		masked := MaskURL(url)
		assert.True(t, strings.HasSuffix(masked, "***"))
		assert.NotContains(t, masked, "secret-token-12345")
	})
}

func TestMaskValue(t *testing.T) {
	assert.Empty(t, MaskValue(""))
	assert.Equal(t, "****", MaskValue("abcd"))
	assert.Equal(t, "********", MaskValue("a-very-long-secret"))
}

func TestIsSensitiveField(t *testing.T) {
	assert.True(t, IsSensitiveField("token"))
	assert.True(t, IsSensitiveField("API_KEY"))
	assert.True(t, IsSensitiveField("telegram_token"))
	assert.False(t, IsSensitiveField("label"))
	assert.False(t, IsSensitiveField("start"))
}

func TestMaskString(t *testing.T) {
	t.Run("no_urls", func(t *testing.T) {
		msg := "This is a simple log message"
		assert.Equal(t, msg, MaskString(msg))
	})

	t.Run("with_url", func(t *testing.T) {
		msg := "Sending request to https://example.com/api/v1/webhook/secret-token-12345"
		result := MaskString(msg)
		assert.Contains(t, result, "Sending request to")
		assert.Contains(t, result, "***")
	})

	t.Run("with_localhost", func(t *testing.T) {
		msg := "Connecting to http://localhost:8080/api"
		result := MaskString(msg)
		assert.Contains(t, result, "localhost")
	})
}

func TestMaskSensitiveData(t *testing.T) {
	t.Run("nil_map", func(t *testing.T) {
		result := MaskSensitiveData(nil)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("masks_sensitive_keys", func(t *testing.T) {
		input := map[string]string{
			"Authorization": "Bearer abc123",
			"Content-Type":  "application/json",
		}
		result := MaskSensitiveData(input)
		assert.Equal(t, "***", result["Authorization"])
		assert.Equal(t, "application/json", result["Content-Type"])
	})
}
