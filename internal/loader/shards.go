package loader

import (
	"context"

	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/fsutil"
	"github.com/vk/jpsloader/internal/xmldoc"
	"golang.org/x/sync/errgroup"
)

// loadShards parses every .xml file of dir concurrently and returns the named
// component of each, in file name order. Files without the component are
// skipped.
func (l *Loader) loadShards(ctx context.Context, dir, component string, exp xmldoc.Expander) ([]*xmldoc.Element, []string, error) {
	files, err := fsutil.ListFilesByExtension(dir, ".xml")
	if err != nil || len(files) == 0 {
		return nil, nil, err
	}
	ctxlog.FromContext(ctx).Debug("Loading shard files.", "dir", dir, "count", len(files))

	slots := make([]*xmldoc.Element, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.pool.Size())
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			root, err := l.docs.LoadRootElement(file, exp)
			if err != nil {
				return err
			}
			slots[i] = root.FindComponent(component)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var comps []*xmldoc.Element
	var names []string
	for i, c := range slots {
		if c == nil {
			ctxlog.FromContext(ctx).Warn("Shard file has no expected component.", "file", files[i], "component", component)
			continue
		}
		comps = append(comps, c)
		names = append(names, files[i])
	}
	return comps, names, nil
}
