package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedModel{}))
	return db
}

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func findSpanAttr(spans []sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, s := range spans {
		for _, kv := range s.Attributes() {
			if kv.Key == key {
				return kv.Value, true
			}
		}
	}
	return attribute.Value{}, false
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestNewDBTracingPlugin_DefaultsThreshold(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
}

func TestDBTracingPlugin_Register_Disabled(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop()).Register(db))
	assert.Nil(t, db.Callback().Query().Get("otel_timing:after_query"))
}

func TestDBTracingPlugin_Register_TwiceFails(t *testing.T) {
	db := setupTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"

	p := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, p.Register(db))
	assert.Error(t, p.Register(db))
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	sr := setupRecorder(t)
	db := setupTestDB(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	cfg.SlowQueryThresh = time.Nanosecond
	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))

	ctx, parent := otel.Tracer("test").Start(context.Background(), "request")
	require.NoError(t, db.WithContext(ctx).Create(&tracedModel{Name: "Babolat"}).Error)
	var found tracedModel
	err := db.WithContext(ctx).First(&found, "name = ?", "missing").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	parent.End()

	spans := sr.Ended()
	require.GreaterOrEqual(t, len(spans), 3)

	table, ok := findSpanAttr(spans, "db.sql.table")
	require.True(t, ok)
	assert.Equal(t, "traced_models", table.AsString())

	var create sdktrace.ReadOnlySpan
	for _, span := range spans {
		if span.Name() == "gorm.Create" {
			create = span
		}
	}
	require.NotNil(t, create)
	slow, ok := findSpanAttr([]sdktrace.ReadOnlySpan{create}, "db.slow_query")
	require.True(t, ok)
	assert.True(t, slow.AsBool())

	_, onParent := findSpanAttr([]sdktrace.ReadOnlySpan{spans[len(spans)-1]}, "db.slow_query")
	assert.False(t, onParent)
}

func TestDBTracingPlugin_TimingHooksSitInsideQuerySpan(t *testing.T) {
	db := setupTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))

	for _, name := range []string{"otel:before:select", "otel_timing:before_query", "otel_timing:after_query", "otel:after:select"} {
		assert.NotNil(t, db.Callback().Query().Get(name), name)
	}
}

func TestAnnotate_NilContextDoesNotPanic(t *testing.T) {
	db := setupTestDB(t)
	p := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
	db.Statement.Context = nil
	assert.NotPanics(t, func() { p.annotate(db) })
}
