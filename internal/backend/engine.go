// Package backend wires the storage engine and SQL front-end together
// behind a single Engine type and owns the process-level concerns the
// core packages stay free of: logging and configuration.
package backend

import (
	"path"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/joeandaverde/databas/internal/storage"
	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/parser"
)

// DatabaseFileName is the name of the single database file inside the
// configured data directory.
const DatabaseFileName = "databas.db"

// Engine owns one open database file and its page cache.
type Engine struct {
	log    *log.Logger
	id     string
	config *Config
	cache  *storage.PageCache
}

// Start opens (creating if missing) the database file in the configured
// data directory and initializes the page cache over it.
func Start(config *Config) (*Engine, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := log.New()
	if config.LogLevel != "" {
		level, err := log.ParseLevel(config.LogLevel)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(level)
	}

	frameCount := config.FrameCount
	if frameCount == 0 {
		frameCount = DefaultFrameCount
	}

	dbPath := path.Join(config.DataDir, DatabaseFileName)
	disk, err := storage.OpenDiskManager(dbPath)
	if err != nil {
		return nil, err
	}

	cache, err := storage.NewPageCache(disk, frameCount)
	if err != nil {
		_ = disk.Close()
		return nil, err
	}

	instanceID := uuid.New().String()
	logger.WithFields(log.Fields{
		"instance":    instanceID,
		"path":        dbPath,
		"page_count":  disk.PageCount(),
		"frame_count": frameCount,
	}).Info("database engine started")

	return &Engine{
		log:    logger,
		id:     instanceID,
		config: config,
		cache:  cache,
	}, nil
}

// Log exposes the engine's logger so collaborators (the REPL) share its
// level and formatting.
func (e *Engine) Log() *log.Logger {
	return e.log
}

// Cache returns the engine's page cache.
func (e *Engine) Cache() *storage.PageCache {
	return e.cache
}

// Command parses one SQL statement, logging the outcome. Execution is the
// job of a future layer; today a parsed statement is the result.
func (e *Engine) Command(text string) (ast.Statement, error) {
	stmt, err := parser.ParseStatement(text)
	if err != nil {
		e.log.WithField("instance", e.id).Debugf("parse error: %s", err)
		return nil, err
	}
	e.log.WithField("instance", e.id).Debugf("parsed: %s", stmt)
	return stmt, nil
}

// Close flushes every dirty unpinned page and closes the underlying file.
// Flush failures are reported before the best-effort close; callers that
// need durability should treat a non-nil error as fatal.
func (e *Engine) Close() error {
	flushErr := e.cache.FlushAll()
	closeErr := e.cache.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
