package messages

import (
	"chardash/internal/config"
)

type ErrorMsg struct {
	Err error
}

// FirstPageMsg reports the end of a first-page load, successful or not.
type FirstPageMsg struct {
	Err error
}

// BackgroundDoneMsg reports the end of the background load.
type BackgroundDoneMsg struct {
	Err error
}

type ExportDoneMsg struct {
	Path string
	Err  error
}

type ConfigUpdateMsg struct {
	Config *config.Config
	Err    error
}
