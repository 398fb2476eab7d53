package notify

import (
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"clipcam/clip"
)

// Notification is sent to all NotifyListeners registered with Notifier.
type Notification struct {
	TimeString  string
	Identifier  string
	DurationSec int
	SizeBytes   int64
}

type NotifyListener interface {
	Notify(n *Notification) error
}

// Notifier fans out completed-clip notifications. It implements
// clip.RecordListener.
type Notifier struct {
	Listeners []NotifyListener
}

// ClipRecorded is invoked when a capture completes successfully.
func (n *Notifier) ClipRecorded(r *clip.Record) {
	notification := &Notification{
		TimeString:  r.Time.Format("3:04 PM"),
		Identifier:  r.ID,
		DurationSec: r.DurationSec,
		SizeBytes:   r.Size,
	}
	log.Infof("Sending notification: %v", spew.Sdump(notification))
	for _, l := range n.Listeners {
		go func(l NotifyListener) {
			if err := l.Notify(notification); err != nil {
				log.Errorf("Failed to send notification: %v", err)
			}
		}(l)
	}
}
