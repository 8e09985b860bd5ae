package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ArtifactVersion is the artifact format this loader understands.
const ArtifactVersion = 1

// ErrBadArtifact marks an artifact that was readable but not decodable
// into a usable model.
var ErrBadArtifact = errors.New("invalid model artifact")

type artifact struct {
	Version  int          `json:"version"`
	Features int          `json:"features"`
	Classes  []string     `json:"classes"`
	Trees    [][]TreeNode `json:"trees"`
}

// LoadModel reads and validates a serialized forest artifact. All
// structural checks happen here, once, so a loaded model only fails at
// predict time on feature-count mismatch.
func LoadModel(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art artifact
	if err := json.Unmarshal(payload, &art); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArtifact, err)
	}
	if art.Version != ArtifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadArtifact, art.Version)
	}
	if art.Features <= 0 {
		return nil, fmt.Errorf("%w: feature count %d", ErrBadArtifact, art.Features)
	}
	if len(art.Classes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrBadArtifact)
	}
	if len(art.Trees) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrBadArtifact)
	}
	for i, nodes := range art.Trees {
		if err := checkTree(nodes, art.Features, len(art.Classes)); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrBadArtifact, i, err)
		}
	}

	return &Forest{
		classes:  art.Classes,
		trees:    art.Trees,
		features: art.Features,
	}, nil
}

func checkTree(nodes []TreeNode, featureCount, classCount int) error {
	if len(nodes) == 0 {
		return errors.New("empty")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.Class < 0 || node.Class >= classCount {
				return fmt.Errorf("node %d: class %d out of range", i, node.Class)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild < 0 || node.LeftChild >= len(nodes) ||
			node.RightChild < 0 || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: child index out of range", i)
		}
	}
	return nil
}
