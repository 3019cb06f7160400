// ABOUTME: Bubbletea model for player TUI
// ABOUTME: Defines playback state, buffer list layout and key handling
package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	file string

	// Stream
	codec       string
	sampleRate  int
	channels    int
	bitDepth    int
	interleaved bool

	// Buffer list layout
	bufferCount    int
	bufferSize     int
	allocatedBytes int
	blockFrames    uint32

	// Playback
	state  string
	volume int
	muted  bool
	err    error

	// Stats
	framesRendered uint64
	blocks         int64

	showDebug  bool
	volumeCtrl *VolumeControl

	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case DoneMsg:
		m.state = "finished"
		m.err = msg.Err
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderControls()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

func (m Model) renderHeader() string {
	state := m.state
	if m.err != nil {
		state = "error: " + m.err.Error()
	}

	return fmt.Sprintf(`┌─ Buffer List Player ─────────────────────────────────┐
│ File:   %-45s │
│ State:  %-45s │
├──────────────────────────────────────────────────────┤
`, truncate(filepath.Base(m.file), 45), truncate(state, 45))
}

func (m Model) renderStreamInfo() string {
	if m.codec == "" {
		return "│ No stream                                            │\n"
	}

	layout := "planar"
	if m.interleaved {
		layout = "interleaved"
	}

	s := fmt.Sprintf("│ Format: %-45s │\n", truncate(fmt.Sprintf("%s %dHz %s %d-bit",
		m.codec, m.sampleRate, channelName(m.channels), m.bitDepth), 45))
	s += fmt.Sprintf("│ Layout: %-45s │\n", truncate(fmt.Sprintf("%s, %d x %d bytes",
		layout, m.bufferCount, m.bufferSize), 45))
	return s
}

func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}

	volumeBar := renderBar(m.volume, 100, 10)

	return fmt.Sprintf("│                                                      │\n"+
		"│ Volume: %-45s │\n",
		fmt.Sprintf("[%s] %d%%%s", volumeBar, m.volume, muteIcon))
}

func (m Model) renderStats() string {
	seconds := 0.0
	if m.sampleRate > 0 {
		seconds = float64(m.framesRendered) / float64(m.sampleRate)
	}
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  %-45s │
│                                                      │
`, fmt.Sprintf("%d blocks, %d frames (%.1fs)", m.blocks, m.framesRendered, seconds))
}

func (m Model) renderHelp() string {
	return `│ ↑/↓:Volume  m:Mute  d:Debug  q:Quit                  │
└──────────────────────────────────────────────────────┘
`
}

func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Block frames:    %-34d │
│   Allocated bytes: %-34d │
`, m.blockFrames, m.allocatedBytes)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up":
		if m.volume < 100 {
			m.volume += 5
			if m.volume > 100 {
				m.volume = 100
			}
			m.sendVolume()
		}
	case "down":
		if m.volume > 0 {
			m.volume -= 5
			if m.volume < 0 {
				m.volume = 0
			}
			m.sendVolume()
		}
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// sendVolume forwards the current volume without blocking the UI
func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Codec != "" {
		m.codec = msg.Codec
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitDepth = msg.BitDepth
		m.interleaved = msg.Interleaved
	}
	if msg.BufferCount != 0 {
		m.bufferCount = msg.BufferCount
		m.bufferSize = msg.BufferSize
		m.allocatedBytes = msg.AllocatedBytes
		m.blockFrames = msg.BlockFrames
	}
	if msg.Blocks != 0 {
		m.blocks = msg.Blocks
		m.framesRendered = msg.FramesRendered
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	State          string
	Codec          string
	SampleRate     int
	Channels       int
	BitDepth       int
	Interleaved    bool
	BufferCount    int
	BufferSize     int
	AllocatedBytes int
	BlockFrames    uint32
	Blocks         int64
	FramesRendered uint64
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
