package locatork

import "sync/atomic"

var sessionCounter int64

// GetSessionID a process wide id for document sessions (tabs, pages)
func GetSessionID() int64 {
	return atomic.AddInt64(&sessionCounter, 1)
}
