package cli

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pavedocs/paver/internal/adapters/driven/config/file"
	"github.com/pavedocs/paver/internal/core/domain"
	"github.com/pavedocs/paver/internal/parser"
)

// session is the shared per-invocation state: the resolved configuration
// plus the parsed document set and any diagnostics produced on the way
// (gradual expiry notices, parse failures).
type session struct {
	cfg   domain.Config
	docs  []*domain.Document
	diags []domain.Diagnostic
}

// loadSession resolves configuration and parses the docs tree.
func loadSession(ov file.Overrides) (*session, error) {
	cfg, resolveDiags, err := file.Resolve(flagDirectory, ov, time.Now())
	if err != nil {
		return nil, err
	}

	docs, parseDiags, err := parser.Load(cfg.RepoRoot, cfg.DocsRoot)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:   cfg,
		docs:  docs,
		diags: append(resolveDiags, parseDiags...),
	}, nil
}

// selectDocs narrows the document set to the given path arguments. Each
// argument selects the document with that repository-relative path, or every
// document under it when it names a directory prefix. No arguments keeps
// the full set.
func (s *session) selectDocs(args []string) []*domain.Document {
	if len(args) == 0 {
		return s.docs
	}

	var selected []*domain.Document
	for _, doc := range s.docs {
		for _, arg := range args {
			arg = filepath.ToSlash(filepath.Clean(arg))
			if doc.Path == arg || strings.HasPrefix(doc.Path, arg+"/") {
				selected = append(selected, doc)
				break
			}
		}
	}
	return selected
}
