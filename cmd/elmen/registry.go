package main

import (
	"log/slog"

	"github.com/vango-dev/elmen/pkg/dom"
	"github.com/vango-dev/elmen/pkg/markup"
)

// Listener and action names descriptions can use with the CLI.
const (
	listenerLog      = "log"
	listenerActivate = "activate"
	actionFocus      = "focus"
	actionStamp      = "stamp"
)

// builtinRegistry returns the listeners and actions the CLI knows.
// Listeners only run for events sent with render --dispatch.
func builtinRegistry(logger *slog.Logger) *markup.Registry {
	return markup.NewRegistry().
		ListenerFunc(listenerLog, func(ev dom.Event) {
			logger.Info("event", "type", ev.Type(), "target", nodeName(ev.Target()), "current", nodeName(ev.CurrentTarget()))
		}).
		ListenerFunc(listenerActivate, func(ev dom.Event) {
			if el, ok := ev.CurrentTarget().(dom.Element); ok {
				if err := el.ClassList().Add("active"); err != nil {
					logger.Warn("activate failed", "error", err)
				}
			}
		}).
		Action(actionFocus, func(el dom.Element) {
			_ = el.SetAttribute("autofocus", "")
		}).
		Action(actionStamp, func(el dom.Element) {
			_ = el.SetAttribute("data-built-by", "elmen")
		})
}

func nodeName(n dom.Node) string {
	if n == nil {
		return ""
	}
	return n.NodeName()
}
