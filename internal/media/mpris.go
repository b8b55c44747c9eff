// Package media pauses and resumes desktop media players over MPRIS so
// recordings are not polluted by playback.
package media

import (
	"context"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
	statusProperty  = playerInterface + ".PlaybackStatus"
)

// busConn is the slice of dbus.Conn the controller needs; tests fake it.
type busConn interface {
	ListNames() ([]string, error)
	PlaybackStatus(name string) (string, error)
	CallPlayer(name string, method string) error
}

type sessionBus struct {
	once sync.Once
	conn *dbus.Conn
	err  error
}

func (b *sessionBus) connect() (*dbus.Conn, error) {
	b.once.Do(func() {
		b.conn, b.err = dbus.SessionBus()
	})
	return b.conn, b.err
}

func (b *sessionBus) ListNames() ([]string, error) {
	conn, err := b.connect()
	if err != nil {
		return nil, err
	}
	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, err
	}
	return names, nil
}

func (b *sessionBus) PlaybackStatus(name string) (string, error) {
	conn, err := b.connect()
	if err != nil {
		return "", err
	}
	variant, err := conn.Object(name, mprisObjectPath).GetProperty(statusProperty)
	if err != nil {
		return "", err
	}
	status, _ := variant.Value().(string)
	return status, nil
}

func (b *sessionBus) CallPlayer(name string, method string) error {
	conn, err := b.connect()
	if err != nil {
		return err
	}
	return conn.Object(name, mprisObjectPath).Call(playerInterface+"."+method, 0).Err
}

// MPRISController drives whichever players are currently on the session
// bus. All operations are best-effort: a broken bus or a misbehaving
// player never fails the dictation pipeline.
type MPRISController struct {
	bus busConn
	log *zap.Logger
}

func NewMPRISController(log *zap.Logger) *MPRISController {
	if log == nil {
		log = zap.NewNop()
	}
	return &MPRISController{bus: &sessionBus{}, log: log}
}

// Playing reports whether any MPRIS player is currently playing.
func (c *MPRISController) Playing(_ context.Context) bool {
	for _, name := range c.playerNames() {
		status, err := c.bus.PlaybackStatus(name)
		if err != nil {
			continue
		}
		if status == "Playing" {
			return true
		}
	}
	return false
}

// Pause pauses every playing player.
func (c *MPRISController) Pause(_ context.Context) {
	for _, name := range c.playerNames() {
		status, err := c.bus.PlaybackStatus(name)
		if err != nil || status != "Playing" {
			continue
		}
		if err := c.bus.CallPlayer(name, "Pause"); err != nil {
			c.log.Debug("media pause failed", zap.String("player", name), zap.Error(err))
		}
	}
}

// Resume resumes paused players.
func (c *MPRISController) Resume(_ context.Context) {
	for _, name := range c.playerNames() {
		status, err := c.bus.PlaybackStatus(name)
		if err != nil || status != "Paused" {
			continue
		}
		if err := c.bus.CallPlayer(name, "Play"); err != nil {
			c.log.Debug("media resume failed", zap.String("player", name), zap.Error(err))
		}
	}
}

func (c *MPRISController) playerNames() []string {
	names, err := c.bus.ListNames()
	if err != nil {
		c.log.Debug("dbus list names failed", zap.Error(err))
		return nil
	}
	players := names[:0:0]
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	return players
}
