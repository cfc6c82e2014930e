package predict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidTree is returned when a tree dump cannot be evaluated.
var ErrInvalidTree = errors.New("invalid tree")

// treeNode mirrors one node of an XGBoost JSON model dump
// (booster.get_dump(dump_format="json")).
type treeNode struct {
	NodeID         int         `json:"nodeid"`
	Split          string      `json:"split,omitempty"`
	SplitCondition float64     `json:"split_condition,omitempty"`
	Yes            int         `json:"yes,omitempty"`
	No             int         `json:"no,omitempty"`
	Missing        *int        `json:"missing,omitempty"`
	Leaf           *float64    `json:"leaf,omitempty"`
	Children       []*treeNode `json:"children,omitempty"`

	feature int
}

type tree struct {
	nodes map[int]*treeNode
}

// TreeEnsemble evaluates a gradient-boosted regression tree ensemble from
// an XGBoost JSON dump. The prediction is base_score plus the sum of the
// leaf values reached in every tree.
type TreeEnsemble struct {
	trees     []tree
	baseScore float64
	splits    map[string]float64
}

// DefaultBaseScore is XGBoost's default global bias for regression.
const DefaultBaseScore = 0.5

// LoadTreeEnsemble reads an XGBoost JSON dump from path.
func LoadTreeEnsemble(path string, baseScore float64) (*TreeEnsemble, error) {
	data, err := os.ReadFile(path) //nolint:gosec // model path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading tree dump: %w", err)
	}
	return ParseTreeEnsemble(data, baseScore)
}

// ParseTreeEnsemble parses an XGBoost JSON dump: a JSON array with one
// nested tree object per boosting round. Split features may be referenced
// positionally (f0, f1, f2) or by feature name.
func ParseTreeEnsemble(data []byte, baseScore float64) (*TreeEnsemble, error) {
	var roots []*treeNode
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("parsing tree dump: %w", err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: dump contains no trees", ErrInvalidTree)
	}

	m := &TreeEnsemble{
		trees:     make([]tree, 0, len(roots)),
		baseScore: baseScore,
		splits:    make(map[string]float64, NumFeatures),
	}

	for i, root := range roots {
		if root == nil {
			return nil, fmt.Errorf("%w: tree %d is null", ErrInvalidTree, i)
		}
		t := tree{nodes: make(map[int]*treeNode)}
		if err := m.flatten(root, t.nodes); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if _, ok := t.nodes[0]; !ok {
			return nil, fmt.Errorf("%w: tree %d has no root node", ErrInvalidTree, i)
		}
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		m.trees = append(m.trees, t)
	}

	return m, nil
}

func (m *TreeEnsemble) flatten(n *treeNode, nodes map[int]*treeNode) error {
	if _, dup := nodes[n.NodeID]; dup {
		return fmt.Errorf("%w: duplicate node id %d", ErrInvalidTree, n.NodeID)
	}
	nodes[n.NodeID] = n

	if n.Leaf != nil {
		return nil
	}

	idx, err := featureIndex(n.Split)
	if err != nil {
		return err
	}
	n.feature = idx
	m.splits[FeatureNames[idx]]++

	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := m.flatten(c, nodes); err != nil {
			return err
		}
	}
	return nil
}

func (t tree) validate() error {
	for id, n := range t.nodes {
		if n.Leaf != nil {
			continue
		}
		targets := []int{n.Yes, n.No}
		if n.Missing != nil {
			targets = append(targets, *n.Missing)
		}
		for _, target := range targets {
			if _, ok := t.nodes[target]; !ok || target == id {
				return fmt.Errorf("%w: node %d points at missing node %d", ErrInvalidTree, id, target)
			}
		}
	}
	return nil
}

// featureIndex resolves a split feature reference to a vector position.
func featureIndex(split string) (int, error) {
	if rest, ok := strings.CutPrefix(split, "f"); ok {
		if idx, err := strconv.Atoi(rest); err == nil {
			if idx < 0 || idx >= NumFeatures {
				return 0, fmt.Errorf("%w: feature index %d out of range", ErrInvalidTree, idx)
			}
			return idx, nil
		}
	}
	for i, name := range FeatureNames {
		if strings.EqualFold(name, split) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown split feature %q", ErrInvalidTree, split)
}

// Name returns the backend name.
func (*TreeEnsemble) Name() string {
	return "xgboost"
}

// NumTrees returns the number of boosting rounds in the ensemble.
func (m *TreeEnsemble) NumTrees() int {
	return len(m.trees)
}

// Predict evaluates every row against every tree.
func (m *TreeEnsemble) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(row) != NumFeatures {
			return nil, fmt.Errorf("row %d: %w: got %d", i, ErrFeatureCount, len(row))
		}
		sum := m.baseScore
		for j, t := range m.trees {
			v, err := t.eval(row)
			if err != nil {
				return nil, fmt.Errorf("row %d, tree %d: %w", i, j, err)
			}
			sum += v
		}
		out[i] = sum
	}
	return out, nil
}

func (t tree) eval(row []float64) (float64, error) {
	n := t.nodes[0]
	// A valid tree reaches a leaf in at most len(nodes) steps.
	for range len(t.nodes) {
		if n.Leaf != nil {
			return *n.Leaf, nil
		}

		x := row[n.feature]
		next := n.No
		switch {
		case math.IsNaN(x):
			next = n.Yes
			if n.Missing != nil {
				next = *n.Missing
			}
		case x < n.SplitCondition:
			next = n.Yes
		}
		n = t.nodes[next]
	}
	return 0, fmt.Errorf("%w: cycle detected", ErrInvalidTree)
}

// Importance reports split counts per feature, matching XGBoost's
// "weight" importance type.
func (m *TreeEnsemble) Importance() map[string]float64 {
	imp := make(map[string]float64, len(m.splits))
	for k, v := range m.splits {
		imp[k] = v
	}
	return imp
}
