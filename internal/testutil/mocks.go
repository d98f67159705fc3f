package testutil

import (
	"sync"
	"time"

	"twsave/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface over a plain map
// and counts hits and sets.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]byte

	Hits   int
	Misses int
	Sets   int
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if ok {
		m.Hits++
	} else {
		m.Misses++
	}
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Saves           int
	Restores        map[string]int
	RestoreFailures map[string]int
	CacheHits       int
	CacheMisses     int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Restores:        make(map[string]int),
		RestoreFailures: make(map[string]int),
	}
}

func (m *MockMetrics) IncSavesTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
}

func (m *MockMetrics) IncRestoresTotal(version string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Restores[version]++
}

func (m *MockMetrics) IncRestoreFailures(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RestoreFailures[reason]++
}

func (m *MockMetrics) ObserveSaveDuration(_ time.Duration)    {}
func (m *MockMetrics) ObserveRestoreDuration(_ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

// MockCompressor passes data through unchanged.
type MockCompressor struct{}

func (m *MockCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (m *MockCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (m *MockCompressor) Close()                                {}
