// Package knowledge loads sales playbook documents for indexing.
package knowledge

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/hunter/internal/logger"
)

// DocumentType tags every loaded document.
const DocumentType = "sales_playbook"

// Document is one playbook file loaded from the knowledge base directory.
type Document struct {
	Source string // filename stem, used as identifier
	Text   string // full file content
	Type   string // always DocumentType
}

// Loader reads playbook text files from a directory.
type Loader struct {
	dir string
}

// NewLoader creates a Loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadDocuments reads all *.txt files under the configured directory.
// A missing directory yields an empty result with a warning; individual
// unreadable files are skipped rather than aborting the load.
func (l *Loader) LoadDocuments() []Document {
	log := logger.GetLogger()

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", l.dir).Msg("Knowledge base directory not available")
		return nil
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Skipping unreadable knowledge file")
			continue
		}

		docs = append(docs, Document{
			Source: strings.TrimSuffix(entry.Name(), ".txt"),
			Text:   string(data),
			Type:   DocumentType,
		})
		log.Debug().Str("file", entry.Name()).Msg("Loaded knowledge file")
	}

	log.Info().Int("documents", len(docs)).Str("dir", l.dir).Msg("Knowledge base loaded")
	return docs
}
