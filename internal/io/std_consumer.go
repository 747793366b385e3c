package io

import (
	"context"
	"os"
	"path"

	"github.com/golang/glog"
	"github.com/segmentio/encoding/json"

	"github.com/ecopia-map/quadtree_indexer/tools"
)

type StandardConsumer struct{}

func NewStandardConsumer() *StandardConsumer {
	return &StandardConsumer{}
}

// Continually consumes WorkUnits submitted to a work channel producing the corresponding points.json and
// node.json files. Continues working until the work channel is closed, an error is raised or the
// context is done.
func (c *StandardConsumer) Consume(ctx context.Context, work <-chan *WorkUnit) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case workUnit, ok := <-work:
			if !ok {
				// channel was closed by producer
				return nil
			}
			if err := c.doWork(workUnit); err != nil {
				glog.Errorf("export of node %s failed: %v", workUnit.Node.NodeID(), err)
				return err
			}
		}
	}
}

func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	if err := tools.CreateDirectoryIfDoesNotExist(workUnit.BasePath); err != nil {
		return err
	}

	node := workUnit.Node
	if node.NumberOfPoints() > 0 {
		if err := writeJSONFile(path.Join(workUnit.BasePath, PointsFileName), newPointsDocument(node)); err != nil {
			return err
		}
	}

	if !node.IsLeaf() || node.IsRoot() {
		if err := writeJSONFile(path.Join(workUnit.BasePath, NodeFileName), newNodeDocument(node)); err != nil {
			return err
		}
	}

	return nil
}

func writeJSONFile(filePath string, v interface{}) error {
	content, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, content, 0644)
}
