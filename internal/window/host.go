// Package window hosts the fern renderer in a desktop window.
//
// [Host] holds everything that does not need a display: key actions, the
// welcome overlay and the resize filter. [Run] drives a Host from an Ebiten
// game loop and needs cgo; without it Run returns [ErrUnavailable].
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/fern/internal/frame"
	"github.com/san-kum/fern/internal/raster"
	"github.com/san-kum/fern/internal/render"
)

var ErrUnavailable = errors.New("window: desktop window requires cgo (build with CGO_ENABLED=1)")

// Action is a host-independent user command.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionStart
	ActionStop
	ActionReset
	ActionTheme
	ActionFaster
	ActionSlower
	ActionHelp
	ActionQuit
	ActionDismiss
)

// ActionForRune maps typed characters to actions.
func ActionForRune(r rune) Action {
	switch r {
	case ' ':
		return ActionToggle
	case 's', 'S':
		return ActionStart
	case 'x', 'X':
		return ActionStop
	case 'r', 'R':
		return ActionReset
	case 't', 'T':
		return ActionTheme
	case '+', '=':
		return ActionFaster
	case '-', '_':
		return ActionSlower
	case '?':
		return ActionHelp
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

type Options struct {
	Title     string
	FPS       int
	Resize    render.ResizePolicy
	AutoStart bool
}

// Host routes actions and window sizes to a controller painting on a
// raster surface.
type Host struct {
	ctrl    *render.Controller
	queue   *frame.Queue
	surface *raster.Surface
	filter  *render.ResizeFilter
	opts    Options

	showHelp bool
	welcome  bool
	status   string
}

func NewHost(ctrl *render.Controller, queue *frame.Queue, surface *raster.Surface, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "Barnsley Fern"
	}
	return &Host{
		ctrl:     ctrl,
		queue:    queue,
		surface:  surface,
		filter:   render.NewResizeFilter(opts.Resize),
		opts:     opts,
		showHelp: true,
		welcome:  true,
	}
}

// Frame runs the callbacks queued for this frame and any due resize.
func (h *Host) Frame(now time.Time) {
	if w, ht, ok := h.filter.Due(now); ok {
		h.ctrl.OnViewportChange(w, ht)
	}
	h.queue.Fire()
}

// Layout reports the window's current size.
func (h *Host) Layout(width, height int, now time.Time) {
	if h.filter.Observe(width, height, now) {
		h.ctrl.OnViewportChange(width, height)
	}
}

// Apply performs a. It reports whether the host should quit. While the
// help overlay is up every action only dismisses it.
func (h *Host) Apply(a Action) bool {
	if a == ActionNone {
		return false
	}
	if h.showHelp {
		h.showHelp = false
		if h.welcome {
			h.welcome = false
			if h.opts.AutoStart {
				h.ctrl.Start()
			}
		}
		return false
	}

	h.status = ""
	var err error
	switch a {
	case ActionToggle:
		h.ctrl.Toggle()
	case ActionStart:
		h.ctrl.Start()
	case ActionStop:
		h.ctrl.Stop()
	case ActionReset:
		h.ctrl.Reset()
	case ActionTheme:
		err = h.ctrl.SetTheme(render.NextThemeName(h.ctrl.Theme().Name))
	case ActionFaster:
		err = h.ctrl.SetThroughput(h.ctrl.Throughput() * 2)
	case ActionSlower:
		err = h.ctrl.SetThroughput(max(1, h.ctrl.Throughput()/2))
	case ActionHelp:
		h.showHelp = true
	case ActionQuit:
		return true
	}
	if err != nil {
		h.status = err.Error()
	}
	return false
}

func (h *Host) ShowingHelp() bool { return h.showHelp }

// Overlay returns the text drawn over the fern.
func (h *Host) Overlay() string {
	if h.showHelp {
		head := "KEYBOARD SHORTCUTS\n\n"
		if h.welcome {
			head = "BARNSLEY FERN\n\nFour affine maps, picked at random with fixed odds,\ngrow a fern one point at a time.\n\n"
		}
		return head +
			"Space  start or stop drawing\n" +
			"S / X  start / stop\n" +
			"R      reset the fern\n" +
			"T      cycle color themes\n" +
			"+ / -  double / halve points per frame\n" +
			"?      show this help\n" +
			"Q      quit\n\n" +
			"press any key to continue"
	}

	state := "PAUSED"
	if h.ctrl.Running() {
		state = "RUNNING"
	}
	s := fmt.Sprintf("%s  points %d  per frame %d  theme %s",
		state, h.ctrl.PointCount(), h.ctrl.Throughput(), h.ctrl.Theme().Name)
	if h.status != "" {
		s += "\n" + h.status
	}
	return s
}

func (h *Host) Surface() *raster.Surface { return h.surface }

func (h *Host) Options() Options { return h.opts }
