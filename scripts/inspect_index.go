package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// inspect_index.go - Utility to summarize a face index snapshot
//
// Usage:
//   go run scripts/inspect_index.go <index_file>
//
// Example:
//   go run scripts/inspect_index.go indexed_data.json
//
// Output:
//   Records:   57
//   Photos:    23
//   Dimension: 128

type record struct {
	Photo     string    `json:"photo"`
	FaceID    string    `json:"face_id"`
	Embedding []float64 `json:"embedding"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run inspect_index.go <index_file>")
		fmt.Println("")
		fmt.Println("Example:")
		fmt.Println("  go run scripts/inspect_index.go indexed_data.json")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		fmt.Printf("parse %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	photos := make(map[string]struct{})
	dimension := 0
	for _, r := range records {
		photos[r.Photo] = struct{}{}
		if dimension == 0 {
			dimension = len(r.Embedding)
		}
	}

	fmt.Printf("Records:   %d\n", len(records))
	fmt.Printf("Photos:    %d\n", len(photos))
	fmt.Printf("Dimension: %d\n", dimension)
}
