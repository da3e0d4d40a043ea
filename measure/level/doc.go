// Package level tracks the peak absolute amplitude over a sliding time
// window, the quantity shown by a playback level meter.
package level
