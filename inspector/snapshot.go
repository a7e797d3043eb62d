package inspector

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/hotedit/inspector/graph"
	"golang.org/x/sync/errgroup"
)

// Snapshot loads the declaration trees of one program snapshot
type Snapshot struct {
	factory     *Factory
	fs          afs.Service
	match       func(info os.FileInfo) bool
	concurrency int
}

// SnapshotOption customizes a snapshot loader
type SnapshotOption func(*Snapshot)

// WithMatcher replaces the file and directory matcher
func WithMatcher(match func(info os.FileInfo) bool) SnapshotOption {
	return func(s *Snapshot) {
		if match != nil {
			s.match = match
		}
	}
}

// WithFileService sets the storage service used to walk and read snapshots
func WithFileService(fs afs.Service) SnapshotOption {
	return func(s *Snapshot) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithParallelism limits the number of files parsed in parallel
func WithParallelism(limit int) SnapshotOption {
	return func(s *Snapshot) {
		if limit > 0 {
			s.concurrency = limit
		}
	}
}

// NewSnapshot creates a snapshot loader
func (f *Factory) NewSnapshot(options ...SnapshotOption) *Snapshot {
	ret := &Snapshot{factory: f, fs: afs.New(), match: SourceFiles, concurrency: 8}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Load walks root and parses every matched source; tree paths are slash separated and relative
// to root so that trees of two snapshots of the same program line up
func (s *Snapshot) Load(ctx context.Context, root string) ([]*graph.Tree, error) {
	var locations []string
	urls := map[string]string{}
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !s.match(info) {
			return false, nil
		}
		if info.IsDir() {
			return true, nil
		}
		if !s.factory.Accepts(info.Name()) {
			return true, nil
		}
		location := path.Join(parent, info.Name())
		locations = append(locations, location)
		urls[location] = url.Join(baseURL, parent, info.Name())
		return true, nil
	}
	if err := s.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", root, err)
	}
	sort.Strings(locations)

	trees := make([]*graph.Tree, len(locations))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, location := range locations {
		i, location := i, location
		group.Go(func() error {
			code, err := s.fs.DownloadWithURL(groupCtx, urls[location])
			if err != nil {
				return fmt.Errorf("failed to download %v: %w", location, err)
			}
			tree, err := s.factory.InspectSource(location, code)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}
