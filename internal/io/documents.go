package io

import (
	"strconv"

	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

const (
	PointsFileName   = "points.json"
	NodeFileName     = "node.json"
	ManifestFileName = "manifest.json"
)

type BoundDocument struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

type PointsDocument struct {
	Node   string       `json:"node"`
	Depth  int          `json:"depth"`
	Points [][2]float64 `json:"points"`
}

type NodeDocument struct {
	Node        string        `json:"node"`
	Depth       int           `json:"depth"`
	Bound       BoundDocument `json:"bound"`
	Leaf        bool          `json:"leaf"`
	NumPoints   int           `json:"num_points"`
	TotalPoints int64         `json:"total_points"`
	Children    []string      `json:"children,omitempty"`
}

type ManifestDocument struct {
	RunID        string        `json:"run_id"`
	CreatedAt    string        `json:"created_at"`
	NodeCapacity int           `json:"node_capacity"`
	Bound        BoundDocument `json:"bound"`
	TotalPoints  int64         `json:"total_points"`
	Nodes        int64         `json:"nodes"`
}

func newBoundDocument(bbox *geometry.BoundingBox) BoundDocument {
	return BoundDocument{
		X:    bbox.Xmin,
		Y:    bbox.Ymin,
		XMax: bbox.Xmax,
		YMax: bbox.Ymax,
	}
}

func newPointsDocument(node quadtree.INode) *PointsDocument {
	points := node.GetPoints()
	doc := &PointsDocument{
		Node:   node.NodeID(),
		Depth:  node.Depth(),
		Points: make([][2]float64, len(points)),
	}
	for i, p := range points {
		doc.Points[i] = [2]float64{p.X, p.Y}
	}
	return doc
}

func newNodeDocument(node quadtree.INode) *NodeDocument {
	doc := &NodeDocument{
		Node:        node.NodeID(),
		Depth:       node.Depth(),
		Bound:       newBoundDocument(node.GetBoundingBox()),
		Leaf:        node.IsLeaf(),
		NumPoints:   node.NumberOfPoints(),
		TotalPoints: node.CountPoints(),
	}
	for i, child := range node.GetChildren() {
		if child != nil {
			doc.Children = append(doc.Children, strconv.Itoa(i))
		}
	}
	return doc
}
