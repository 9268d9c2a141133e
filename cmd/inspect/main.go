package main

import (
	"fmt"
	"math"
	"os"

	"smpl-mesh-renderer/internal/rig"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <model.smr> [...]")
		os.Exit(1)
	}

	for _, arg := range os.Args[1:] {
		params, err := rig.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			continue
		}

		fmt.Printf("\n=== %s ===\n", arg)
		fmt.Printf("Vertices: %d  Joints: %d  Faces: %d\n",
			params.NumVertices(), params.NumJoints(), len(params.Faces))

		printBounds(params)
		printWeightStats(params)
		printHierarchy(params)
	}
}

func printBounds(p *rig.Parameters) {
	mn := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	mx := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range p.Template {
		for k := 0; k < 3; k++ {
			if v[k] < mn[k] {
				mn[k] = v[k]
			}
			if v[k] > mx[k] {
				mx[k] = v[k]
			}
		}
	}
	fmt.Printf("Template bounds: x=[%.3f..%.3f] y=[%.3f..%.3f] z=[%.3f..%.3f]\n",
		mn[0], mx[0], mn[1], mx[1], mn[2], mx[2])
}

func printWeightStats(p *rig.Parameters) {
	n, k := p.NumVertices(), p.NumJoints()
	minSum, maxSum := math.Inf(1), math.Inf(-1)
	maxInfluences := 0
	for v := 0; v < n; v++ {
		sum := 0.0
		influences := 0
		for j := 0; j < k; j++ {
			w := p.Weights[v*k+j]
			sum += w
			if w > 0 {
				influences++
			}
		}
		if sum < minSum {
			minSum = sum
		}
		if sum > maxSum {
			maxSum = sum
		}
		if influences > maxInfluences {
			maxInfluences = influences
		}
	}
	fmt.Printf("Weight row sums: [%.6f..%.6f], max influences per vertex: %d\n",
		minSum, maxSum, maxInfluences)
}

func printHierarchy(p *rig.Parameters) {
	depth := make([]int, p.NumJoints())
	maxDepth := 0
	for i := 1; i < p.NumJoints(); i++ {
		depth[i] = depth[p.Parent[i]] + 1
		if depth[i] > maxDepth {
			maxDepth = depth[i]
		}
	}

	leaves := 0
	isParent := make([]bool, p.NumJoints())
	for i := 1; i < p.NumJoints(); i++ {
		isParent[p.Parent[i]] = true
	}
	for _, par := range isParent {
		if !par {
			leaves++
		}
	}
	fmt.Printf("Hierarchy: depth %d, %d leaf joints\n", maxDepth, leaves)
}
