package inkpress

import (
	"regexp"
	"time"

	"github.com/radovskyb/watcher"
)

// startContentWatcher watches the content directory for markdown changes
// and invalidates the post cache, so posts edited or added out-of-band show
// up without a restart. Returns a stop function.
func (a *App) startContentWatcher() func() {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)

	r := regexp.MustCompile(`\.md$`)
	w.AddFilterHook(watcher.RegexFilterHook(r, false))

	go func() {
		for {
			select {
			case event := <-w.Event:
				a.log.Debug().Str("path", event.Path).Str("op", event.Op.String()).Msg("content changed, invalidating cache")
				a.Cache.Invalidate()
			case err := <-w.Error:
				a.log.Error().Err(err).Msg("content watcher error")
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.Add(a.Config.ContentDir); err != nil {
		// A missing content dir just means no posts yet; the watcher is a
		// convenience, not a requirement.
		a.log.Warn().Err(err).Str("dir", a.Config.ContentDir).Msg("content watcher disabled")
		w.Close()
		return func() {}
	}

	go func() {
		if err := w.Start(100 * time.Millisecond); err != nil {
			a.log.Error().Err(err).Msg("content watcher failed to start")
		}
	}()

	return w.Close
}
