package contextcollector

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

const unknown = "unknown"

// Collector implements ports.EnvironmentCollector with os-release parsing and tool detection.
type Collector struct {
	osReleasePath string
	toolsToCheck  []string
	workDir       func() string
}

// NewCollector builds a collector reading /etc/os-release.
// workDir reports the session working directory; nil means os.Getwd.
func NewCollector(workDir func() string) *Collector {
	return &Collector{
		osReleasePath: "/etc/os-release",
		toolsToCheck:  []string{"apt", "dnf", "yum", "pacman", "zypper", "apk", "brew", "systemctl", "docker", "git", "sudo", "curl"},
		workDir:       workDir,
	}
}

// Collect gathers environment data. It never fails; missing facts are "unknown".
func (c *Collector) Collect(context.Context) domain.Environment {
	wd := ""
	if c.workDir != nil {
		wd = c.workDir()
	}
	if wd == "" {
		wd, _ = os.Getwd()
	}
	return domain.Environment{
		Distro:         c.detectDistro(),
		OS:             runtime.GOOS,
		Shell:          detectShell(),
		WorkingDir:     wd,
		User:           os.Getenv("USER"),
		AvailableTools: c.detectTools(),
	}
}

func (c *Collector) detectDistro() string {
	f, err := os.Open(c.osReleasePath)
	if err != nil {
		return unknown
	}
	defer f.Close()
	return parseOSRelease(f)
}

// parseOSRelease returns the lowercased ID= value of an os-release file.
func parseOSRelease(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		value := strings.Trim(strings.TrimPrefix(line, "ID="), `"'`)
		if value == "" {
			return unknown
		}
		return strings.ToLower(value)
	}
	return unknown
}

func (c *Collector) detectTools() []string {
	var available []string
	for _, tool := range c.toolsToCheck {
		if _, err := exec.LookPath(tool); err == nil {
			available = append(available, tool)
		}
	}
	sort.Strings(available)
	return available
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return unknown
}

var _ ports.EnvironmentCollector = (*Collector)(nil)
