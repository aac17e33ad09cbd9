// Package events publishes project load progress. Listeners are best effort:
// nothing here can fail a load.
package events
