// Package prompts loads versioned prompt configurations so each pipeline
// module's prompt can be revised independently.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// Prompt is one named prompt configuration inside a module's prompt file.
type Prompt struct {
	System      string  `json:"system"`
	Template    string  `json:"template"`
	Description string  `json:"description,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Loader resolves prompts from <dir>/<module>/<version>/prompts.json.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load returns the prompt configuration for a module/version/key triple.
func (l *Loader) Load(module, version, key string) (*Prompt, error) {
	path := filepath.Join(l.dir, module, version, "prompts.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt file not found: %s: %w", path, err)
	}

	var prompts map[string]Prompt
	if err := sonic.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("invalid prompt file %s: %w", path, err)
	}

	prompt, ok := prompts[key]
	if !ok {
		return nil, fmt.Errorf("prompt key %q not found in %s/%s", key, module, version)
	}
	return &prompt, nil
}

// LoadOrDefault returns the configured prompt, or the given fallback when
// the file or key is absent. Pipeline steps must not fail on a missing
// prompt file.
func (l *Loader) LoadOrDefault(module, version, key string, fallback Prompt) Prompt {
	prompt, err := l.Load(module, version, key)
	if err != nil {
		return fallback
	}
	return *prompt
}
