package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/radhe-ai/ravi/internal/activity"
)

//go:embed templates/*.html
var embedded embed.FS

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"categoryIcon": func(c activity.Category) string {
		switch c {
		case activity.CategoryCall:
			return "📞"
		case activity.CategorySMS:
			return "💬"
		case activity.CategoryNotification:
			return "🔔"
		case activity.CategoryLocation:
			return "📍"
		}
		return "•"
	},
}

// Templates is the parsed page set. When loaded from a directory it can be
// re-parsed on change; a failed re-parse keeps the previous set.
type Templates struct {
	dir  string
	fsys fs.FS

	mu   sync.RWMutex
	tmpl *template.Template
}

// LoadTemplates parses the page templates from dir, or from the embedded
// copy when dir is empty.
func LoadTemplates(dir string) (*Templates, error) {
	t := &Templates{dir: dir}
	if dir == "" {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("embedded templates: %w", err)
		}
		t.fsys = sub
	} else {
		t.fsys = os.DirFS(dir)
	}

	if err := t.reload(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Templates) reload() error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(t.fsys, "*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	t.mu.Lock()
	t.tmpl = tmpl
	t.mu.Unlock()
	return nil
}

// Render executes the named template into w.
func (t *Templates) Render(w io.Writer, name string, data any) error {
	t.mu.RLock()
	tmpl := t.tmpl
	t.mu.RUnlock()
	return tmpl.ExecuteTemplate(w, name, data)
}

// Watch re-parses templates whenever an .html file in the template
// directory changes, until ctx is done. It is a no-op for embedded templates.
// The watcher is registered before Watch returns.
func (t *Templates) Watch(ctx context.Context) error {
	if t.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(t.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", t.dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(ev.Name, ".html") || ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
					continue
				}
				if err := t.reload(); err != nil {
					log.Printf("warning: reload templates: %v", err)
					continue
				}
				log.Printf("templates reloaded (%s)", filepath.Base(ev.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("warning: template watcher: %v", err)
			}
		}
	}()

	return nil
}
