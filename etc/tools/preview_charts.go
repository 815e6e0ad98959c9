package main

import (
	"context"
	"fmt"
	"os"

	"job-charts/internal/features/charts"
	"job-charts/internal/pipeline"
	"job-charts/internal/source"
)

// go run etc/tools/preview_charts.go
// renders every chart from the built-in sample tables into etc/charts/
func main() {
	fmt.Println("Generating preview charts...")

	driver := &pipeline.Driver{
		Source:   source.Sample{},
		Renderer: charts.NewRenderer("etc/charts", nil),
	}
	report, err := driver.Run(context.Background())
	if err != nil {
		fmt.Printf("Error generating charts: %v\n", err)
		os.Exit(1)
	}
	for _, f := range report.Failed {
		fmt.Printf("Failed %s: %v\n", f.Name, f.Err)
	}

	for _, path := range report.Paths() {
		fmt.Printf("Chart generated successfully: %s\n", path)
	}
	fmt.Println("Open the files to see the result!")
}
