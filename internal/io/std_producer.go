package io

import (
	"context"
	"path"
	"strconv"

	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

type StandardProducer struct {
	basePath string
	produced int64
}

func NewStandardProducer(basePath string) *StandardProducer {
	return &StandardProducer{
		basePath: basePath,
	}
}

// Parses a tree node and submits WorkUnits to the provided work channel. Should be called only on
// the tree root node. Closes the channel when all work is submitted or the context is done.
func (p *StandardProducer) Produce(ctx context.Context, work chan<- *WorkUnit, node quadtree.INode) error {
	defer close(work)
	return p.produce(ctx, p.basePath, node, work)
}

func (p *StandardProducer) produce(ctx context.Context, basePath string, node quadtree.INode, work chan<- *WorkUnit) error {
	// empty leaves have nothing to export
	if node.NumberOfPoints() > 0 || !node.IsLeaf() || node.IsRoot() {
		select {
		case work <- &WorkUnit{Node: node, BasePath: basePath}:
			p.produced++
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for i, child := range node.GetChildren() {
		if child == nil {
			continue
		}
		if err := p.produce(ctx, path.Join(basePath, strconv.Itoa(i)), child, work); err != nil {
			return err
		}
	}

	return nil
}

// Number of WorkUnits submitted so far
func (p *StandardProducer) Produced() int64 {
	return p.produced
}
