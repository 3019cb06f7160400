// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the buffer list player
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume or mute change from the keyboard
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// DoneMsg reports the end of playback
type DoneMsg struct {
	Err error
}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
	}
}

// NewModel creates a new TUI model
func NewModel(file string, volume int, volCtrl *VolumeControl) Model {
	return Model{
		file:       file,
		volume:     volume,
		state:      "starting",
		volumeCtrl: volCtrl,
	}
}

// Run creates the TUI program; the caller starts it with Run on the result
func Run(file string, volume int, volCtrl *VolumeControl) *tea.Program {
	return tea.NewProgram(NewModel(file, volume, volCtrl), tea.WithAltScreen())
}
