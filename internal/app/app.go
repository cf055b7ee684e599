// internal/app/app.go
package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamview/internal/notify"
	"github.com/llehouerou/streamview/internal/platform"
	"github.com/llehouerou/streamview/internal/playback"
	"github.com/llehouerou/streamview/internal/player"
	"github.com/llehouerou/streamview/internal/state"
	"github.com/llehouerou/streamview/internal/ui/styles"
	"github.com/llehouerou/streamview/internal/ui/textinput"
)

// Deps are the collaborators the model drives.
type Deps struct {
	Lifecycle      *playback.Lifecycle
	Surface        player.Surface
	Notifier       notify.Notifier // nil disables desktop notifications
	Store          state.Interface // nil disables history
	Caps           platform.Capabilities
	CompactOnStart bool
	CompactOnBlur  bool // enter compact mode instead of stopping on blur
	Logger         *slog.Logger
}

// Model is the root application model.
type Model struct {
	lifecycle *playback.Lifecycle
	surface   player.Surface
	sub       *playback.Subscription
	notifier  notify.Notifier
	store     state.Interface
	caps      platform.Capabilities
	log       *slog.Logger

	compactOnStart bool
	compactOnBlur  bool
	autoCompact    bool // compact mode entered by blur, left on focus
	errorNotifyID  uint32

	recent        []state.RecentStream
	lastRecording *state.Recording

	snap       playback.Snapshot
	buffering  float64
	stderrLine string
	ErrorMsg   string
	StatusMsg  string

	prompt  textinput.Model
	spinner spinner.Model

	Width   int
	Height  int
	Focused bool

	now func() time.Time
}

// New creates the model and takes the session's subscription.
func New(d Deps) Model {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(styles.T().S().Warning),
	)
	m := Model{
		lifecycle:      d.Lifecycle,
		surface:        d.Surface,
		sub:            d.Lifecycle.Session().Subscribe(),
		notifier:       d.Notifier,
		store:          d.Store,
		caps:           d.Caps,
		log:            log,
		compactOnStart: d.CompactOnStart,
		compactOnBlur:  d.CompactOnBlur,
		snap:           d.Lifecycle.Snapshot(),
		prompt:         textinput.New(),
		spinner:        sp,
		Focused:        true,
		now:            time.Now,
	}
	m.loadHistory()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startCmd(),
		m.WatchSessionEvents(),
		WatchStderr(),
		TickCmd(),
		m.spinner.Tick,
	)
}
