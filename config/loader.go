package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Config file locations.
const (
	ProjectConfigFile = "rules-us-ga.yaml"
	UserConfigDir     = ".config/rules-us-ga"
	UserConfigFile    = "config.yaml"
)

// Loader resolves the layered configuration for a run.
type Loader struct {
	logger *slog.Logger

	// workDir and homeDir replace the process cwd and home when set.
	workDir string
	homeDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// layer is one config file in precedence order.
type layer struct {
	name     string
	path     string
	required bool
}

func (l *Loader) layers(explicitPath string) []layer {
	var out []layer
	if path := l.UserConfigPath(); path != "" {
		out = append(out, layer{name: "user", path: path})
	}
	if path := l.findProjectConfig(); path != "" {
		out = append(out, layer{name: "project", path: path})
	}
	if explicitPath != "" {
		out = append(out, layer{name: "explicit", path: explicitPath, required: true})
	}
	return out
}

// Load starts from DefaultConfig and applies, in order, the user config
// (~/.config/rules-us-ga/config.yaml), the nearest rules-us-ga.yaml at or
// above the working directory, and explicitPath when non-empty. A layer
// changes only the keys it contains. An unset corpus root falls back to
// the git toplevel, then the working directory.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	config := DefaultConfig()

	for _, ly := range l.layers(explicitPath) {
		err := config.ApplyFile(ly.path)
		switch {
		case err == nil:
			l.logger.Debug("Applied config layer", slog.String("layer", ly.name), slog.String("path", ly.path))
		case ly.required:
			return nil, err
		case errors.Is(err, fs.ErrNotExist):
			// optional layer absent
		default:
			l.logger.Warn("Skipping config layer", slog.String("layer", ly.name), slog.String("path", ly.path), slog.String("error", err.Error()))
		}
	}

	if config.Corpus.Root == "" {
		config.Corpus.Root = l.defaultCorpusRoot()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) defaultCorpusRoot() string {
	if root := l.detectGitRoot(); root != "" {
		l.logger.Debug("Corpus root from git toplevel", slog.String("path", root))
		return root
	}
	dir, err := l.cwd()
	if err != nil {
		return ""
	}
	l.logger.Debug("Corpus root from working directory", slog.String("path", dir))
	return dir
}

// EnsureUserConfig writes the default configuration to the user config
// path unless a file is already there. It returns the path and whether it
// created the file.
func (l *Loader) EnsureUserConfig() (string, bool, error) {
	path := l.UserConfigPath()
	if path == "" {
		return "", false, errors.New("cannot determine home directory")
	}

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := DefaultConfig().SaveToFile(path); err != nil {
		return path, false, err
	}

	l.logger.Info("Created default user config", slog.String("path", path))
	return path, true, nil
}

func (l *Loader) cwd() (string, error) {
	if l.workDir != "" {
		return l.workDir, nil
	}
	return os.Getwd()
}

// UserConfigPath returns the path to the user config file, or "" when
// the home directory is unknown.
func (l *Loader) UserConfigPath() string {
	home := l.homeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks up from the working directory to the filesystem
// root and returns the first project config it sees.
func (l *Loader) findProjectConfig() string {
	dir, err := l.cwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (l *Loader) detectGitRoot() string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = l.workDir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
