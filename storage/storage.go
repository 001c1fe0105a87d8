// Package storage provides named binary streams for map files and extracted
// tile sheets.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/quasilyte/gdata"
)

// Storage opens named streams for reading and creates them for writing.
// A stream written through Create is visible to Open once it is closed.
type Storage interface {
	Create(name string) (io.WriteCloser, error)
	Open(name string) (io.ReadCloser, error)
}

// Dir stores streams as files below a root directory.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) Create(name string) (io.WriteCloser, error) {
	path := filepath.Join(d.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return f, nil
}

func (d *Dir) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.Root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// Gdata stores streams as gdata items in the per-user application data
// directory. Writes are buffered and saved as one item on Close.
type Gdata struct {
	m *gdata.Manager
}

// OpenGdata opens the gdata manager for the given application name.
func OpenGdata(appName string) (*Gdata, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open gdata %s: %w", appName, err)
	}
	return &Gdata{m: m}, nil
}

func (g *Gdata) Create(name string) (io.WriteCloser, error) {
	return &itemWriter{save: func(data []byte) error {
		return g.m.SaveItem(name, data)
	}, name: name}, nil
}

func (g *Gdata) Open(name string) (io.ReadCloser, error) {
	data, err := g.m.LoadItem(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Memory keeps streams in memory. It is safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Create(name string) (io.WriteCloser, error) {
	return &itemWriter{save: func(data []byte) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.items[name] = data
		return nil
	}, name: name}, nil
}

func (m *Memory) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Names returns the stored stream names in sorted order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type itemWriter struct {
	buf    bytes.Buffer
	save   func([]byte) error
	name   string
	closed bool
}

func (w *itemWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write %s: %w", w.name, fs.ErrClosed)
	}
	return w.buf.Write(p)
}

func (w *itemWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.save(w.buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", w.name, err)
	}
	return nil
}
