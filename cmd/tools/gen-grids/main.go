// Command gen-grids generates synthetic surface measurement files for
// testing and demonstration. Each file is a whitespace-separated text grid
// in the instrument's original naming convention, with a zero border and a
// small fraction of sentinel artifacts, so a generated tree exercises the
// full cleaning pipeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	outDir   = flag.String("o", "data", "output base directory")
	folders  = flag.String("folders", "30,60", "comma-separated folder names to populate")
	count    = flag.Int("n", 6, "files per folder")
	seed     = flag.Int64("seed", 1, "random seed")
	artifact = flag.Float64("artifact-rate", 0.001, "fraction of cells replaced by the -4000 sentinel")
	border   = flag.Int("border", 2, "width of the zero border around each grid")
)

// patternSpec pairs a warpage shape with a plausible package size.
type patternSpec struct {
	name    string
	rows    int
	cols    int
	surface func(x, y float64) float64
}

var patterns = []patternSpec{
	{"center_bow", 120, 160, func(x, y float64) float64 {
		r2 := (x-0.5)*(x-0.5) + (y-0.5)*(y-0.5)
		return -2000 * r2
	}},
	{"edge_curl", 80, 100, func(x, y float64) float64 {
		edge := math.Min(math.Min(x, 1-x), math.Min(y, 1-y))
		return -1500 * (1 - 2*edge)
	}},
	{"corner_stress", 50, 60, func(x, y float64) float64 {
		c := x*x + y*y + (x-1)*(x-1) + y*y + x*x + (y-1)*(y-1) + (x-1)*(x-1) + (y-1)*(y-1)
		return -800 * c
	}},
	{"thermal_gradient", 100, 120, func(x, y float64) float64 {
		return -1200 * (x + y)
	}},
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	total := 0
	for _, folder := range strings.Split(*folders, ",") {
		folder = strings.TrimSpace(folder)
		if folder == "" {
			continue
		}
		dir := filepath.Join(*outDir, folder)
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("create %s: %v", dir, err)
		}

		for i := 0; i < *count; i++ {
			spec := patterns[(total+i)%len(patterns)]

			// Vary sizes so batches are heterogeneous.
			sizeFactor := 0.8 + 0.4*rng.Float64()
			rows := max(20, int(float64(spec.rows)*sizeFactor))
			cols := max(20, int(float64(spec.cols)*sizeFactor))

			name := fmt.Sprintf("synthetic_%s_%03d@_ORI.txt", spec.name, i+1)
			path := filepath.Join(dir, name)
			if err := writeGrid(path, rows, cols, spec, rng); err != nil {
				log.Fatalf("write %s: %v", path, err)
			}
		}
		total += *count
		log.Printf("wrote %d files to %s", *count, dir)
	}
	log.Printf("done: %d files total", total)
}

func writeGrid(path string, rows, cols int, spec patternSpec, rng *rand.Rand) error {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.2f", cellValue(r, c, rows, cols, spec, rng)))
		}
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func cellValue(r, c, rows, cols int, spec patternSpec, rng *rand.Rand) float64 {
	// Zero border, as the instrument pads unmeasured margins.
	if r < *border || r >= rows-*border || c < *border || c >= cols-*border {
		return 0
	}
	if rng.Float64() < *artifact {
		return -4000
	}
	x := float64(c) / float64(cols-1)
	y := float64(r) / float64(rows-1)
	return spec.surface(x, y) + rng.NormFloat64()*150
}
