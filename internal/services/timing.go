package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long an operation took; call it deferred with the
// operation's start time
func TrackTime(name string, start time.Time) {
	log.Debugf("%s took %d ms", name, time.Since(start).Milliseconds())
}
