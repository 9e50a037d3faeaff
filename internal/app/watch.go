package app

import (
	"github.com/dshills/gotodoc/internal/config"
	"github.com/dshills/gotodoc/internal/config/watcher"
)

// WatchConfig reloads the configuration whenever one of the candidate
// config files changes. Stop the returned watcher to end reloading.
// A reload that fails to load keeps the current registry.
func (a *Application) WatchConfig(opts config.Options, wopts ...watcher.Option) (*watcher.Watcher, error) {
	log := a.logger.WithComponent("config")

	wopts = append([]watcher.Option{watcher.WithErrorHandler(func(err error) {
		log.Warn("watch: %v", err)
	})}, wopts...)
	w, err := watcher.New(wopts...)
	if err != nil {
		return nil, &InitError{Component: "config watcher", Err: err}
	}

	for _, path := range config.Candidates(opts) {
		if err := w.Watch(path); err != nil {
			_ = w.Stop()
			return nil, &InitError{Component: "config watcher", Err: err}
		}
	}

	w.OnChange(func(ev watcher.Event) {
		res, err := config.Load(opts)
		if err != nil {
			log.Warn("reload after %s of %s: %v", ev.Op, ev.Path, err)
			return
		}
		if res.Warnings != nil {
			log.Warn("%v", res.Warnings)
		}
		if err := a.Reload(res.Config); err != nil {
			log.Warn("%v", err)
		}
		log.Info("reloaded %s", ev.Path)
	})
	return w, nil
}
