// Package player drives an external audio player binary (ffplay, mpv,
// paplay, ...) as the audio output device. Pause and resume are
// implemented with SIGSTOP/SIGCONT on the player process.
package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"

	"songvault/internal/domain"
)

type execPlayer struct {
	command string
	args    []string
	logger  *slog.Logger

	cmd  *exec.Cmd
	done chan struct{}
}

// New returns a domain.Player that launches the given command with the
// given extra arguments followed by the file path. For ffplay the usual
// extra arguments are "-nodisp -autoexit -loglevel quiet".
func New(command string, args []string, logger *slog.Logger) domain.Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &execPlayer{command: command, args: args, logger: logger}
}

func (p *execPlayer) Start(path string) error {
	if p.cmd != nil {
		return fmt.Errorf("player already running")
	}
	cmd := exec.Command(p.command, append(append([]string{}, p.args...), path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.command, err)
	}
	p.cmd = cmd
	p.done = make(chan struct{})
	go func(cmd *exec.Cmd, done chan struct{}) {
		if err := cmd.Wait(); err != nil {
			p.logger.Debug("player exited", "command", p.command, "error", err)
		}
		close(done)
	}(cmd, p.done)
	return nil
}

func (p *execPlayer) Pause() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return domain.ErrNoPlayback
	}
	return p.cmd.Process.Signal(syscall.SIGSTOP)
}

func (p *execPlayer) Resume() error {
	if p.cmd == nil || p.cmd.Process == nil {
		return domain.ErrNoPlayback
	}
	return p.cmd.Process.Signal(syscall.SIGCONT)
}

func (p *execPlayer) Stop() error {
	if p.cmd == nil {
		return nil
	}
	cmd, done := p.cmd, p.done
	p.cmd, p.done = nil, nil
	if cmd.Process != nil {
		// SIGCONT first so a paused process can be reaped.
		_ = cmd.Process.Signal(syscall.SIGCONT)
		if err := cmd.Process.Kill(); err != nil {
			p.logger.Warn("kill player process", "error", err)
		}
	}
	<-done
	return nil
}
