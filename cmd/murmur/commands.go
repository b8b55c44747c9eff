package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"go.uber.org/zap"

	"murmur/internal/bootstrap"
	"murmur/internal/config"
	"murmur/internal/daemon"
	"murmur/internal/history"
)

// RunCmd starts the dictation daemon.
type RunCmd struct {
	Debug bool `short:"d" long:"debug" description:"verbose logging"`

	opts *Options
}

func (r *RunCmd) Execute(_ []string) error {
	log, err := buildLogger(r.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(r.opts.Config)
	if err != nil {
		return err
	}

	services, err := bootstrap.Build(cfg, log)
	if err != nil {
		return err
	}

	if services.PIDFile.Alive() {
		return fmt.Errorf("another instance is already running")
	}
	if err := services.PIDFile.Write(); err != nil {
		return err
	}
	defer services.PIDFile.Remove()

	services.Transcriber.LoadAsync()

	services.Listener.Start()
	defer services.Listener.Stop()

	log.Info("daemon started",
		zap.Int("pid", os.Getpid()),
		zap.String("model", cfg.Whisper.ModelPath))

	return services.Controller.Run(context.Background(), services.Listener.Events())
}

// ToggleCmd signals the running daemon to start or stop recording.
type ToggleCmd struct {
	opts *Options
}

func (t *ToggleCmd) Execute(_ []string) error {
	return signalDaemon(t.opts.Config, daemon.SignalToggle)
}

// CancelCmd signals the running daemon to discard the active recording.
type CancelCmd struct {
	opts *Options
}

func (c *CancelCmd) Execute(_ []string) error {
	return signalDaemon(c.opts.Config, daemon.SignalCancel)
}

// StatusCmd reports whether the daemon is running and shows recent
// dictation history.
type StatusCmd struct {
	Count int `short:"n" long:"count" description:"history entries to show" default:"5"`

	opts *Options
}

func (s *StatusCmd) Execute(_ []string) error {
	cfg, err := config.Load(s.opts.Config)
	if err != nil {
		return err
	}

	pidfile := daemon.NewPIDFile(cfg.Daemon.PIDPath)
	if pidfile.Alive() {
		pid, _ := pidfile.Read()
		fmt.Printf("daemon running (pid %d)\n", pid)
	} else {
		fmt.Println("daemon not running")
	}

	if !cfg.History.Enabled {
		return nil
	}
	records, err := history.NewStore(cfg.History.Path, nil).Recent(s.Count)
	if err != nil {
		return err
	}
	for _, record := range records {
		status := "ok"
		if !record.Completed {
			status = record.ErrorSummary
			if status == "" {
				status = "failed"
			}
		}
		fmt.Printf("%s  [%s] %-6s %q\n",
			record.Timestamp.Format("2006-01-02 15:04:05"),
			status, record.RouteKind, record.RawTranscription)
	}
	return nil
}

// CheckCmd verifies the external tools the daemon shells out to.
type CheckCmd struct {
	opts *Options
}

func (c *CheckCmd) Execute(_ []string) error {
	cfg, err := config.Load(c.opts.Config)
	if err != nil {
		return err
	}

	missing := 0
	for _, tool := range []string{cfg.Whisper.Command, "parecord", "xdotool", "systemd-run", "notify-send"} {
		if _, err := exec.LookPath(tool); err != nil {
			fmt.Printf("missing  %s\n", tool)
			missing++
		} else {
			fmt.Printf("ok       %s\n", tool)
		}
	}

	if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
		fmt.Printf("missing  model %s\n", cfg.Whisper.ModelPath)
		missing++
	} else {
		fmt.Printf("ok       model %s\n", cfg.Whisper.ModelPath)
	}

	if missing > 0 {
		return fmt.Errorf("%d dependency problem(s)", missing)
	}
	fmt.Println("all dependencies present")
	return nil
}

func signalDaemon(configPath string, sig syscall.Signal) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return daemon.NewPIDFile(cfg.Daemon.PIDPath).Signal(sig)
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}
