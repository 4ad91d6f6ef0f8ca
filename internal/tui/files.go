package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"goscatter/internal/dataset"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !dataset.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 && len(m.set.Records) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a dataset file and renders it.
func (m *Model) loadPath(p string) {
	s, err := dataset.Load(m.ctx, p, m.srcOpt)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Warn("load failed", "path", p, "error", err)
		return
	}
	m.selPath = p
	m.setData(s)
	if m.chart != nil {
		m.status = "loaded: " + filepath.Base(p) + "  " + s.Summary()
	}
	m.log.Info("loaded dataset", "path", p, "records", len(s.Records))
}
