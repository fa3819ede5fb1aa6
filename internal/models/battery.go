package models

import "fmt"

// Reading is a single sample of the host's power supply.
type Reading struct {
	Percent int  // 0..100
	Plugged bool // AC adapter connected
}

func (r Reading) String() string {
	if r.Plugged {
		return fmt.Sprintf("%d%% (plugged in)", r.Percent)
	}
	return fmt.Sprintf("%d%% (on battery)", r.Percent)
}
