package forecast

import (
	"math/rand"
	"sort"
)

// regressionTree is a CART regression tree stored as a flat node array so it
// serializes cleanly into the model artifact.
type regressionTree struct {
	Nodes []treeNode `json:"nodes"`
}

type treeNode struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l"`
	Right     int     `json:"r"`
	Value     float64 `json:"v"`
	Leaf      bool    `json:"leaf"`
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

// fitTree grows a tree on the given sample indices. importance accumulates
// the total squared-error reduction attributed to each feature.
func fitTree(X [][]float64, y []float64, idx []int, p treeParams, importance []float64) regressionTree {
	t := regressionTree{}
	t.grow(X, y, idx, 0, p, importance)
	return t
}

func (t *regressionTree) grow(X [][]float64, y []float64, idx []int, depth int, p treeParams, importance []float64) int {
	nodeID := len(t.Nodes)
	t.Nodes = append(t.Nodes, treeNode{Leaf: true, Value: meanAt(y, idx), Left: -1, Right: -1})

	if depth >= p.maxDepth || len(idx) < p.minSamplesSplit {
		return nodeID
	}

	feature, threshold, gain, ok := bestSplit(X, y, idx, p.minSamplesLeaf)
	if !ok {
		return nodeID
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	importance[feature] += gain

	l := t.grow(X, y, left, depth+1, p, importance)
	r := t.grow(X, y, right, depth+1, p, importance)
	t.Nodes[nodeID] = treeNode{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return nodeID
}

// bestSplit scans every feature for the threshold that minimizes the
// post-split sum of squared errors. Returns the absolute error reduction.
func bestSplit(X [][]float64, y []float64, idx []int, minLeaf int) (feature int, threshold, gain float64, ok bool) {
	n := len(idx)
	if n < 2*minLeaf {
		return 0, 0, 0, false
	}

	var total, totalSq float64
	for _, i := range idx {
		total += y[i]
		totalSq += y[i] * y[i]
	}
	parentSSE := totalSq - total*total/float64(n)

	bestSSE := parentSSE
	nFeatures := len(X[idx[0]])
	order := make([]int, n)

	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		var leftSum, leftSq float64
		for pos := 0; pos < n-1; pos++ {
			i := order[pos]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			nl := pos + 1
			nr := n - nl
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			cur, next := X[i][f], X[order[pos+1]][f]
			if cur == next {
				continue
			}

			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(nl)) + (rightSq - rightSum*rightSum/float64(nr))
			if sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, parentSSE - bestSSE, ok
}

func (t *regressionTree) predict(x []float64) float64 {
	node := t.Nodes[0]
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = t.Nodes[node.Left]
		} else {
			node = t.Nodes[node.Right]
		}
	}
	return node.Value
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var s float64
	for _, i := range idx {
		s += y[i]
	}
	return s / float64(len(idx))
}

// bootstrapSample draws n indices with replacement.
func bootstrapSample(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}
