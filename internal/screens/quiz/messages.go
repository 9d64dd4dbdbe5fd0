package quiz

import (
	"github.com/kompaksatyabuana/kompak/internal/router"
)

// StateChangedMsg signals that the controller moved. Screens re-read the
// snapshot instead of trusting message order.
type StateChangedMsg struct {
	router.BroadcastMsg
}

// loadDoneMsg is sent when a load or reload attempt returns.
type loadDoneMsg struct {
	Err error
}
