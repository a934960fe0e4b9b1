// fusebench drives the fusion API end to end with local images and reports
// per-batch-size timings.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

var (
	backendBase = "http://localhost:8080"
	dataDir     = filepath.Join(".", "data", "images")
	prompt      = "Blend these images into one seamless scene"

	batchSizes = []int{2, 3, 5}
)

func main() {
	ctx := context.Background()

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	client := &http.Client{Jar: jar, Timeout: 5 * time.Minute}

	images, err := listImages(dataDir)
	if err != nil {
		log.Fatal(err)
	}

	var results []BenchResult
	for _, size := range batchSizes {
		for start := 0; start+size <= len(images); start += size {
			res := benchmarkBatch(ctx, client, images[start:start+size])

			if res.Err != nil {
				log.Println("ERR:", res.Err)
			} else {
				log.Printf("OK %s %v", res.Batch, res.Duration)
			}

			results = append(results, res)
		}
	}

	printMarkdown(results)
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		images = append(images, filepath.Join(dir, e.Name()))
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images under %s", dir)
	}
	return images, nil
}

func benchmarkBatch(ctx context.Context, client *http.Client, paths []string) BenchResult {
	start := time.Now()
	batch := batchLabel(paths)

	if err := putJSON(ctx, client, "/api/session/count", CountRequest{Count: len(paths)}); err != nil {
		return BenchResult{Batch: batch, Images: len(paths), Err: err}
	}

	var totalBytes int64
	for i, path := range paths {
		n, err := uploadSlot(ctx, client, i, path)
		if err != nil {
			return BenchResult{Batch: batch, Images: len(paths), Err: err}
		}
		totalBytes += n
	}

	result, err := fuse(ctx, client, prompt)
	if err != nil {
		return BenchResult{Batch: batch, Images: len(paths), Err: err}
	}

	return BenchResult{
		Batch:    batch,
		Images:   len(paths),
		Duration: time.Since(start),
		Caption:  result.Caption,
		Size:     totalBytes,
	}
}

func batchLabel(paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return strings.Join(names, "+")
}

func putJSON(ctx context.Context, client *http.Client, path string, payload any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, backendBase+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func uploadSlot(ctx context.Context, client *http.Client, index int, path string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return 0, err
	}
	if _, err := fw.Write(raw); err != nil {
		return 0, err
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/api/session/slots/%d", backendBase, index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return 0, err
	}
	return int64(len(raw)), nil
}

func fuse(ctx context.Context, client *http.Client, prompt string) (FusionResult, error) {
	body, err := sonic.Marshal(FuseRequest{Prompt: prompt})
	if err != nil {
		return FusionResult{}, fmt.Errorf("marshal req: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, backendBase+"/api/fuse", bytes.NewReader(body))
	if err != nil {
		return FusionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return FusionResult{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return FusionResult{}, err
	}

	var result FusionResult
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&result); err != nil {
		return FusionResult{}, err
	}
	return result, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	b, _ := io.ReadAll(resp.Body)
	var apiErr ErrorResponse
	if err := sonic.Unmarshal(b, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}

func aggregate(results []BenchResult) map[int]Agg {
	m := map[int]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Images]
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Images] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Println("\n## Benchmark Results\n")
	fmt.Println("| Images | Fusions | Avg Time | Total Time | Avg Upload |")
	fmt.Println("|--------|---------|----------|------------|------------|")

	agg := aggregate(results)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for images, a := range agg {
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Printf("| %d | %d | %v | %v | %s |\n",
			images,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Printf("| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			humanBytes(avgSize),
		)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
