package io

import (
	"context"

	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

type Producer interface {
	Produce(ctx context.Context, work chan<- *WorkUnit, node quadtree.INode) error
}

type Consumer interface {
	Consume(ctx context.Context, work <-chan *WorkUnit) error
}
