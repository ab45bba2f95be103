package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths resolves every file system location the application touches.
// All relative directories are anchored at the base directory, which
// defaults to the executable's directory so the binary behaves the same
// regardless of the working directory it is launched from.
type Paths struct {
	BaseDir    string
	DataDir    string
	UploadsDir string
	ReportsDir string
	WebDir     string
	LogsDir    string
}

// NewPaths builds the path set for the given configuration. An empty
// BaseDir resolves to the executable directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
		}
		base = filepath.Dir(exe)
	}

	dataDir := resolveDir(base, cfg.DataDir)
	return &Paths{
		BaseDir:    base,
		DataDir:    dataDir,
		UploadsDir: filepath.Join(dataDir, "uploads"),
		ReportsDir: filepath.Join(dataDir, "reports"),
		WebDir:     resolveDir(base, cfg.WebDir),
		LogsDir:    resolveDir(base, cfg.LogsDir),
	}, nil
}

func resolveDir(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates every directory the application writes into.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.UploadsDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetUploadPath returns the full path for a stored upload.
func (p *Paths) GetUploadPath(filename string) string {
	return filepath.Join(p.UploadsDir, filename)
}

// GetReportPath returns the full path for a generated report file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetWebFilePath returns the full path for a frontend asset.
func (p *Paths) GetWebFilePath(filename string) string {
	return filepath.Join(p.WebDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs every resolved path at startup for debugging.
func (p *Paths) LogPathResolution() {
	slog.Info("Resolved application paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("uploads_dir", p.UploadsDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("web_dir", p.WebDir),
		slog.String("logs_dir", p.LogsDir))
}
