package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"faceconsole/internal/capture"
	"faceconsole/internal/config"
	"faceconsole/internal/faceapi"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Identify a face from an image",
	Long: `Run face identification against the backend for a single image.

With --user the backend verifies the image against one specific record
instead of searching the whole index. A "no match" answer is a normal
result, not a failure.

Example:
  faceconsole identify ./suspect.jpg
  faceconsole identify ./suspect.jpg --user u42`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	identifyCmd.Flags().String("user", "", "Verify against one specific user ID")
}

// loadImageFile reads an image from disk into a capture file.
func loadImageFile(path string) (*capture.File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided image path
	if err != nil {
		return nil, fmt.Errorf("cannot read image %s: %w", path, err)
	}
	return &capture.File{
		Name: path,
		MIME: http.DetectContentType(data),
		Data: data,
	}, nil
}

// printRecognition reports an identification outcome on stdout.
func printRecognition(path string, result *faceapi.RecognizeResult) {
	if result.Recognized {
		fmt.Printf("%s: match - %s (%s)\n", path, result.Username, result.UserID)
		return
	}
	msg := result.Message
	if msg == "" {
		msg = "no match"
	}
	fmt.Printf("%s: %s\n", path, msg)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	image, err := loadImageFile(args[0])
	if err != nil {
		return err
	}

	client, err := faceapi.NewWithCapture(cfg.API.URL, cfg.API.Timeout, captureDir)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	result, err := client.Recognize(cmd.Context(), image, mustGetString(cmd, "user"))
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	printRecognition(args[0], result)
	return nil
}
