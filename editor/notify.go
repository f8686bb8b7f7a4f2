// SPDX-License-Identifier: MIT

package editor

import "go.uber.org/zap"

// Notifier surfaces the outcome of a user action. err is nil for
// informational notices.
type Notifier interface {
	Notify(msg string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string, err error)

// Notify calls f.
func (f NotifierFunc) Notify(msg string, err error) { f(msg, err) }

// LogNotifier writes notices to a logger: failures at warn, the rest at info.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(msg string, err error) {
	if err != nil {
		n.Logger.Warn(msg, zap.Error(err))
		return
	}
	n.Logger.Info(msg)
}
