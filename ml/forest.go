package ml

import (
	"errors"
	"fmt"
)

// Forest is a voting ensemble of decision trees over a fixed class table.
// It is immutable once built; Predict is safe for concurrent use.
type Forest struct {
	classes  []string
	trees    [][]TreeNode
	features int
}

// TreeNode is one node of a tree stored as a flat array. Children are
// indices into the same array; leaves carry a class index.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Class      int     `json:"class"`
	IsLeaf     bool    `json:"is_leaf"`
}

// Classes returns the label table in class-index order.
func (f *Forest) Classes() []string {
	return f.classes
}

// Predict walks every tree and returns the majority label. Confidence is
// the fraction of trees that voted for it.
func (f *Forest) Predict(features []float64) (string, float64, error) {
	if len(f.trees) == 0 {
		return "", 0, errors.New("model is empty")
	}
	if len(features) != f.features {
		return "", 0, fmt.Errorf("expected %d features, got %d", f.features, len(features))
	}

	votes := make([]int, len(f.classes))
	for _, nodes := range f.trees {
		class, err := walkTree(nodes, features)
		if err != nil {
			return "", 0, err
		}
		votes[class]++
	}

	best := 0
	for class, count := range votes {
		if count > votes[best] {
			best = class
		}
	}
	return f.classes[best], float64(votes[best]) / float64(len(f.trees)), nil
}

func walkTree(nodes []TreeNode, features []float64) (int, error) {
	idx := 0
	for range nodes {
		node := nodes[idx]
		if node.IsLeaf {
			return node.Class, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
	// Node count bounds the walk, so reaching here means a cycle.
	return 0, errors.New("invalid tree state")
}
