package main

import "time"

type CountRequest struct {
	Count int `json:"count"`
}

type FuseRequest struct {
	Prompt string `json:"prompt"`
}

type FusionResult struct {
	ID      int64  `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type BenchResult struct {
	Batch    string
	Images   int
	Duration time.Duration
	Caption  string
	Err      error
	Size     int64
}

type Agg struct {
	Count      int
	Total      time.Duration
	TotalBytes int64
}
