package semantic

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// LexicalOnlyModel is the sentinel model name that disables embeddings
// entirely; Encode always reports unavailable and callers score lexically.
const LexicalOnlyModel = "lexical-only"

// LoaderFunc materializes an Encoder for a model whose artifacts live under
// cacheDir. Called at most once per configured model name.
type LoaderFunc func(modelName, cacheDir string) (Encoder, error)

// Manager owns the lifecycle of the configured embedding model: configure,
// lazy load on first encode, status reporting, and cache deletion. It is an
// injected service object, not ambient global state; one instance is shared
// process-wide and is safe for concurrent use. The load transition is
// serialized so concurrent first callers trigger a single load; a failed
// load latches lexical fallback until the model name changes.
type Manager struct {
	cacheDir string
	loader   LoaderFunc
	log      *slog.Logger

	mu        sync.Mutex
	name      string
	encoder   Encoder
	attempted bool
	loadErr   error
}

func NewManager(cacheDir string, loader LoaderFunc, log *slog.Logger) *Manager {
	return &Manager{cacheDir: cacheDir, loader: loader, log: log}
}

// Configure sets which model future encodes use. It never loads anything.
// Setting a new name clears the current handle and load state, so the next
// Encode re-triggers a load-or-fallback decision; repeating the current
// name is a no-op and leaves a loaded instance untouched.
func (m *Manager) Configure(modelName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if modelName == m.name {
		return
	}
	m.name = modelName
	m.encoder = nil
	m.attempted = false
	m.loadErr = nil
}

// Encode returns the embedding for text, or ok=false when embeddings are
// unavailable: no model configured, the lexical-only sentinel, a failed
// load, or a per-call embed failure. Errors are logged, never returned; the
// caller is expected to fall back to lexical scoring.
func (m *Manager) Encode(text string) ([]float32, bool) {
	enc, ok := m.loadedEncoder()
	if !ok {
		return nil, false
	}

	vec, err := enc.Embed(text)
	if err != nil {
		m.log.Warn("embedding failed", "error", err)
		return nil, false
	}
	return vec, true
}

// loadedEncoder returns the ready encoder, performing the one-time lazy
// load under the manager lock. Holding the lock across the load serializes
// concurrent first callers; once loaded, the critical section is a state
// read and Embed calls proceed outside it.
func (m *Manager) loadedEncoder() (Encoder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.encoder != nil {
		return m.encoder, true
	}
	if m.name == "" || m.name == LexicalOnlyModel {
		return nil, false
	}
	if m.attempted {
		return nil, false
	}

	m.attempted = true
	m.log.Info("loading embedding model", "model", m.name)
	enc, err := m.loader(m.name, m.cacheDir)
	if err != nil {
		m.loadErr = err
		m.log.Warn("embedding model load failed, falling back to lexical matching", "model", m.name, "error", err)
		return nil, false
	}

	m.encoder = enc
	m.log.Info("embedding model loaded", "model", m.name, "dimension", enc.Dimension())
	return m.encoder, true
}

// IsDownloaded reports whether the model's artifacts are present in the
// cache, without loading anything into memory.
func (m *Manager) IsDownloaded(modelName string) bool {
	_, err := os.Stat(filepath.Join(m.ModelDir(modelName), manifestName))
	return err == nil
}

// Status returns a human-readable description of the manager state.
func (m *Manager) Status() string {
	m.mu.Lock()
	name := m.name
	loaded := m.encoder != nil
	loadErr := m.loadErr
	m.mu.Unlock()

	switch {
	case name == "":
		return "not configured"
	case name == LexicalOnlyModel:
		return "lexical matching only (no model)"
	case loaded:
		return fmt.Sprintf("%s: loaded", name)
	case loadErr != nil:
		return fmt.Sprintf("%s: load failed (%v), using lexical fallback", name, loadErr)
	case m.IsDownloaded(name):
		return fmt.Sprintf("%s: downloaded, not loaded", name)
	default:
		return fmt.Sprintf("%s: not downloaded", name)
	}
}

// Delete removes the model's cached artifacts. If that model is currently
// loaded, the in-memory handle is cleared as well so the next Encode
// re-triggers a load-or-fallback decision.
func (m *Manager) Delete(modelName string) (bool, string) {
	if modelName == LexicalOnlyModel {
		return false, "lexical-only mode has no cached artifacts"
	}
	if !m.IsDownloaded(modelName) {
		return false, fmt.Sprintf("model %s is not in the cache", modelName)
	}

	if err := os.RemoveAll(m.ModelDir(modelName)); err != nil {
		return false, fmt.Sprintf("delete model %s: %v", modelName, err)
	}

	m.mu.Lock()
	if m.name == modelName {
		m.encoder = nil
		m.attempted = false
		m.loadErr = nil
	}
	m.mu.Unlock()

	return true, fmt.Sprintf("model %s removed from cache", modelName)
}

var reUnsafePathChar = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ModelDir returns the on-disk cache directory for a model.
func (m *Manager) ModelDir(modelName string) string {
	return filepath.Join(m.cacheDir, reUnsafePathChar.ReplaceAllString(modelName, "-"))
}
