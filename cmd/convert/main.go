// Command convert turns a JSON dump of the original model archive into the
// binary archive consumed by the render and inspect tools. One-time
// interoperability path.
package main

import (
	"flag"
	"fmt"
	"os"

	"smpl-mesh-renderer/internal/rig"
)

func main() {
	in := flag.String("in", "", "Path to JSON model dump")
	out := flag.String("out", "", "Path to output archive (.smr)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: convert -in model.json -out model.smr")
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *in, err)
		os.Exit(1)
	}

	params, err := rig.ParseJSONDump(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", *in, err)
		os.Exit(1)
	}

	if err := rig.WriteArchive(*out, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Converted %s -> %s (vertices=%d joints=%d faces=%d)\n",
		*in, *out, params.NumVertices(), params.NumJoints(), len(params.Faces))
}
