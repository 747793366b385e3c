package io

import (
	"context"
	"path"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
	"github.com/ecopia-map/quadtree_indexer/tools"
)

// Writes a tree as a folder hierarchy: one folder per node, named after the quadrant index of the node
// in its parent, and a manifest.json at the top
type Exporter struct {
	numConsumers int
}

func NewExporter(numConsumers int) *Exporter {
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}
	return &Exporter{numConsumers: numConsumers}
}

func (e *Exporter) Export(ctx context.Context, tree quadtree.ITree, nodeCapacity int, outputPath string) (*ManifestDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := tools.CreateDirectoryIfDoesNotExist(outputPath); err != nil {
		return nil, err
	}

	group, ctx := errgroup.WithContext(ctx)

	// buffer 5 times greater than the number of consumers
	work := make(chan *WorkUnit, e.numConsumers*5)

	producer := NewStandardProducer(outputPath)
	group.Go(func() error {
		return producer.Produce(ctx, work, tree.GetRootNode())
	})
	for i := 0; i < e.numConsumers; i++ {
		consumer := NewStandardConsumer()
		group.Go(func() error {
			return consumer.Consume(ctx, work)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	root := tree.GetRootNode()
	manifest := &ManifestDocument{
		RunID:        uuid.New().String(),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		NodeCapacity: nodeCapacity,
		Bound:        newBoundDocument(root.GetBoundingBox()),
		TotalPoints:  root.CountPoints(),
		Nodes:        producer.Produced(),
	}
	if err := writeJSONFile(path.Join(outputPath, ManifestFileName), manifest); err != nil {
		return nil, err
	}

	glog.Infof("exported %d nodes to %s. run_id:%s", manifest.Nodes, outputPath, manifest.RunID)

	return manifest, nil
}
