package dispatch

import "github.com/wippyai/js-runtime/engine"

// sharedChannel caches one unreferenced Channel per engine. New channels
// start referenced, so the cached base is unreferenced immediately; each
// Shared call hands out a referenced clone of it.
var sharedChannel = engine.NewLocal[*Channel]()

// Shared returns a referenced Channel backed by the engine's shared
// queue. Cheaper than New when many short-lived channels are needed, at
// the cost of sharing delivery order with every other Shared user. Must
// be called on the engine goroutine.
func Shared(access *engine.Access) *Channel {
	base, _ := sharedChannel.GetOrInit(access, func(access *engine.Access) (*Channel, error) {
		ch := New(access)
		ch.Unref(access)
		return ch, nil
	})
	ch := base.Clone()
	ch.Reference(access)
	return ch
}
