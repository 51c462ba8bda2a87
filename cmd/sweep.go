package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"faceconsole/internal/config"
	"faceconsole/internal/constants"
	"faceconsole/internal/faceapi"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <folder-path> [folder-path...]",
	Short: "Identify faces in every image in one or more folders",
	Long: `Run face identification over every image found in the given folders.

By default, only files in the specified folders are scanned (non-recursive).
Use -r to search recursively in subdirectories.
Supported formats: jpg, jpeg, png

Example:
  faceconsole sweep /path/to/stills
  faceconsole sweep -r /path/to/footage/frames`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().BoolP("recursive", "r", false, "Search for images recursively in subdirectories")
}

// isImageFile checks if a file has an extension the backend accepts.
func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// collectImages gathers image paths from a folder, optionally recursively.
func collectImages(folderPath string, recursive bool) ([]string, error) {
	info, err := os.Stat(folderPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access folder %s: %w", folderPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folderPath)
	}

	var paths []string
	if recursive {
		err := filepath.WalkDir(folderPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isImageFile(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot walk folder %s: %w", folderPath, err)
		}
		return paths, nil
	}

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", folderPath, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && isImageFile(entry.Name()) {
			paths = append(paths, filepath.Join(folderPath, entry.Name()))
		}
	}
	return paths, nil
}

// sweepOutcome holds one image's identification result for ordered printing.
type sweepOutcome struct {
	path   string
	result *faceapi.RecognizeResult
	err    error
}

func runSweep(cmd *cobra.Command, args []string) error {
	recursive := mustGetBool(cmd, "recursive")
	cfg := config.Load()

	var imagePaths []string
	for _, folderPath := range args {
		paths, err := collectImages(folderPath, recursive)
		if err != nil {
			return err
		}
		imagePaths = append(imagePaths, paths...)
	}

	if len(imagePaths) == 0 {
		fmt.Println("No image files found in the specified folders.")
		return nil
	}

	fmt.Printf("Found %d image(s) to identify from %d folder(s)\n", len(imagePaths), len(args))

	client, err := faceapi.NewWithCapture(cfg.API.URL, cfg.API.Timeout, captureDir)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	bar := progressbar.NewOptions(len(imagePaths),
		progressbar.OptionSetDescription("Identifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	outcomes := make([]sweepOutcome, len(imagePaths))
	var wg sync.WaitGroup
	sem := make(chan struct{}, constants.SweepWorkers)

	for i, path := range imagePaths {
		wg.Add(1)
		go func(idx int, imagePath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome := sweepOutcome{path: imagePath}
			image, err := loadImageFile(imagePath)
			if err != nil {
				outcome.err = err
			} else {
				outcome.result, outcome.err = client.Recognize(cmd.Context(), image, "")
			}
			outcomes[idx] = outcome
			bar.Add(1)
		}(i, path)
	}
	wg.Wait()
	fmt.Println()

	var matched, unmatched, failed int
	for _, outcome := range outcomes {
		switch {
		case outcome.err != nil:
			failed++
			fmt.Printf("Failed: %s: %v\n", outcome.path, outcome.err)
		case outcome.result.Recognized:
			matched++
			printRecognition(outcome.path, outcome.result)
		default:
			unmatched++
		}
	}

	fmt.Printf("\nDone! %d match(es), %d without a match, %d failed\n", matched, unmatched, failed)
	return nil
}
