// Package bootstrap assembles the runtime graph from configuration.
package bootstrap

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"murmur/internal/audio"
	"murmur/internal/config"
	"murmur/internal/daemon"
	"murmur/internal/executor"
	"murmur/internal/grammar"
	"murmur/internal/history"
	"murmur/internal/media"
	"murmur/internal/notify"
	"murmur/internal/output"
	"murmur/internal/ports"
	"murmur/internal/router"
	"murmur/internal/timer"
	"murmur/internal/transcribe"
	"murmur/internal/usecase"
	"murmur/internal/vocab"
)

// Services is the assembled runtime graph.
type Services struct {
	Config      config.Config
	Controller  *usecase.SessionController
	Listener    *daemon.SignalListener
	PIDFile     *daemon.PIDFile
	Transcriber *transcribe.WhisperTranscriber
	Notifier    *notify.Notifier
}

// Build wires all daemon dependencies for the current runtime.
func Build(cfg config.Config, log *zap.Logger) (Services, error) {
	notifier := notify.NewNotifier(cfg.Notifications.Enabled, log)

	corrections, err := vocab.NewEngine(cfg.Whisper.VocabPath)
	if err != nil {
		return Services{}, err
	}

	modelName := modelDisplayName(cfg.Whisper.ModelPath)
	transcriber := transcribe.NewWhisperTranscriber(
		transcribe.Config{
			Command:   cfg.Whisper.Command,
			ModelPath: cfg.Whisper.ModelPath,
			Language:  cfg.Whisper.Language,
			Timeout:   cfg.Whisper.Timeout,
		},
		corrections,
		log,
		func() { notifier.Ready(modelName) },
		notifier.Error,
	)

	var corrector ports.GrammarCorrector = grammar.Passthrough{}
	if cfg.Grammar.Enabled {
		corrector = grammar.NewCorrector(grammar.Config{
			Host:     cfg.Router.OllamaHost,
			Model:    cfg.Grammar.Model,
			Timeout:  cfg.Grammar.Timeout,
			MinWords: cfg.Grammar.MinWords,
		}, log)
	}

	var store ports.HistoryStore
	if cfg.History.Enabled {
		store = history.NewStore(cfg.History.Path, log)
	}

	controller := usecase.NewSessionController(usecase.Collaborators{
		Audio:       audio.NewParecordCapture("parecord"),
		Transcriber: transcriber,
		Grammar:     corrector,
		Router: router.New(router.Config{
			EditTriggers: cfg.Router.EditTriggers,
			EditModel:    cfg.Router.EditModel,
		}),
		Local: executor.NewLocal(executor.LocalConfig{
			Host:    cfg.Router.OllamaHost,
			Model:   cfg.Router.OllamaModel,
			Timeout: cfg.Router.OllamaTimeout,
		}, log),
		Remote: executor.NewRemote(executor.RemoteConfig{
			APIKey:  cfg.Remote.APIKey,
			Models:  cfg.Remote.Models,
			Timeout: cfg.Remote.Timeout,
		}, log),
		Timer: timer.NewExecutor(
			timer.NewSystemdScheduler(cfg.Timer.SoundEnabled),
			cfg.Timer.Timeout,
		),
		Media:    media.NewMPRISController(log),
		Mark:     media.NewMark(cfg.Daemon.MediaMarkPath),
		Output:   output.NewTyper(output.Config{AutoType: cfg.Output.AutoType}, log),
		Notifier: notifier,
		History:  store,
	}, log)

	return Services{
		Config:      cfg,
		Controller:  controller,
		Listener:    daemon.NewSignalListener(cfg.Daemon.EventBuffer, log),
		PIDFile:     daemon.NewPIDFile(cfg.Daemon.PIDPath),
		Transcriber: transcriber,
		Notifier:    notifier,
	}, nil
}

// modelDisplayName shortens a model file path for notifications, e.g.
// ".../ggml-large-v3-turbo.bin" becomes "large-v3-turbo".
func modelDisplayName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimPrefix(name, "ggml-")
}
