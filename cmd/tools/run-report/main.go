// Command run-report lists stored classification runs or re-renders one as
// the text report, straight from the run database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zonwering-data/fshade.report/internal/report"
	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/shadingdb"
)

var (
	dbPath = flag.String("db", "fshade.db", "run database path")
	runID  = flag.String("run", "", "run ID to render (omit to list runs)")
	limit  = flag.Int("limit", 20, "max runs to list")
)

func main() {
	flag.Parse()

	store, err := shadingdb.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open run database: %v", err)
	}
	defer store.Close()

	if *runID == "" {
		listRuns(store)
		return
	}
	renderRun(store, *runID)
}

func listRuns(store *shadingdb.Store) {
	runs, err := store.ListRuns(*limit)
	if err != nil {
		log.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return
	}
	fmt.Printf("%-36s %-20s %5s %8s %8s %10s\n", "ID", "Created", "Month", "Mode", "Windows", "Duration")
	for _, r := range runs {
		fmt.Printf("%-36s %-20s %5d %8s %8d %8.1fms\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Month, r.CalcMode, r.WindowCount, r.DurationMS)
	}
}

func renderRun(store *shadingdb.Store, id string) {
	run, err := store.GetRun(id)
	if err != nil {
		log.Fatalf("failed to load run %s: %v", id, err)
	}
	results, err := store.GetRunResults(id)
	if err != nil {
		log.Fatalf("failed to load results for run %s: %v", id, err)
	}

	text := report.Render(report.Input{
		Windows:   run.WindowCount,
		Month:     run.Month,
		Mode:      shading.ParseCalcMode(run.CalcMode),
		Threshold: shading.DefaultParams().SignificanceDeg,
	}, results)
	os.Stdout.WriteString(text)
}
