// Command shade-bench times batch classification over a synthetic facade:
// a row of windows with awnings, plus optional context towers across the
// street.
package main

import (
	"flag"
	"log"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/zonwering-data/fshade.report/internal/geom"
	"github.com/zonwering-data/fshade.report/internal/shading"
)

var (
	windows    = flag.Int("windows", 50, "number of windows in the facade")
	towers     = flag.Int("towers", 10, "number of context towers")
	iterations = flag.Int("n", 20, "benchmark iterations")
	month      = flag.Int("month", 6, "analysis month (1-12)")
	workers    = flag.Int("workers", 0, "worker pool size (0 = NumCPU)")
)

func windowMesh(xOffset float64) *geom.Mesh {
	m, err := geom.NewMesh([]geom.Vec{
		{X: -0.75 + xOffset, Y: 0, Z: 0},
		{X: 0.75 + xOffset, Y: 0, Z: 0},
		{X: 0.75 + xOffset, Y: 0, Z: 2},
		{X: -0.75 + xOffset, Y: 0, Z: 2},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		log.Fatalf("window mesh: %v", err)
	}
	return m
}

func awningMesh(xOffset float64) *geom.Mesh {
	m, err := geom.NewMesh([]geom.Vec{
		{X: -1 + xOffset, Y: 0, Z: 2},
		{X: 1 + xOffset, Y: 0, Z: 2},
		{X: 1 + xOffset, Y: -1, Z: 2},
		{X: -1 + xOffset, Y: -1, Z: 2},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		log.Fatalf("awning mesh: %v", err)
	}
	return m
}

func towerMesh(xOffset float64) *geom.Mesh {
	m, err := geom.NewMesh([]geom.Vec{
		{X: -3 + xOffset, Y: -30, Z: 0},
		{X: 3 + xOffset, Y: -30, Z: 0},
		{X: 3 + xOffset, Y: -30, Z: 25},
		{X: -3 + xOffset, Y: -30, Z: 25},
	}, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		log.Fatalf("tower mesh: %v", err)
	}
	return m
}

func main() {
	flag.Parse()

	windowMeshes := make([]*geom.Mesh, *windows)
	shadingMeshes := make([]*geom.Mesh, *windows)
	for i := range windowMeshes {
		offset := 2.0 * float64(i)
		windowMeshes[i] = windowMesh(offset)
		// every other window gets an awning
		if i%2 == 0 {
			shadingMeshes[i] = awningMesh(offset)
		}
	}

	contextMeshes := make([]*geom.Mesh, *towers)
	for i := range contextMeshes {
		contextMeshes[i] = towerMesh(8.0 * float64(i))
	}
	ctx := shading.BuildContext(contextMeshes)

	classifier := shading.NewClassifier(shading.Params{Workers: *workers})

	log.Printf("scene: %d windows, %d towers, month %d", *windows, *towers, *month)
	log.Printf("running %d iterations...", *iterations)

	times := make([]float64, 0, *iterations)
	for i := 0; i < *iterations; i++ {
		start := time.Now()
		batch, err := classifier.ClassifyBatch(windowMeshes, shadingMeshes, ctx, *month, shading.ModeHeating)
		if err != nil {
			log.Fatalf("classify: %v", err)
		}
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		times = append(times, elapsed)

		if i == 0 {
			counts := map[shading.Classification]int{}
			for _, r := range batch.Results {
				counts[r.Classification]++
			}
			log.Printf("classification counts: %v", counts)
		}
	}

	sort.Float64s(times)
	avg := stat.Mean(times, nil)
	median := stat.Quantile(0.5, stat.Empirical, times, nil)
	max := times[len(times)-1]
	perWindow := avg / float64(*windows)

	log.Printf("avg: %.2fms | median: %.2fms | max: %.2fms | per window: %.3fms",
		avg, median, max, perWindow)
}
