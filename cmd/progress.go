package cmd

import (
	"github.com/apex/log"
	"github.com/mcpify/mcpify-install/pkg/fetch"
)

// unknownSizeStep is how often progress is logged when the server sends no
// Content-Length.
const unknownSizeStep = 1 << 20

// progressLogger logs artifact download progress at debug level, once per
// percent step, or once per MiB when the total size is unknown.
func progressLogger(step int) fetch.ProgressFunc {
	lastPercent := -1
	var lastBytes int64
	return func(downloaded, total int64) {
		if total <= 0 {
			if downloaded-lastBytes >= unknownSizeStep {
				lastBytes = downloaded
				log.WithField("downloaded", downloaded).Debug("Downloading")
			}
			return
		}

		percent := int(downloaded*100/total) / step * step
		if percent > lastPercent {
			lastPercent = percent
			log.WithFields(log.Fields{
				"downloaded": downloaded,
				"total":      total,
			}).Debugf("Downloading %d%%", percent)
		}
	}
}
