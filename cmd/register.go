package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"faceconsole/internal/capture"
	"faceconsole/internal/config"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/form"
	"faceconsole/internal/register"
	"faceconsole/internal/verify"
)

var registerCmd = &cobra.Command{
	Use:   "register <category>",
	Short: "Register a person with a photo",
	Long: `Register a person in the face recognition backend.

The category (man, woman, child, disabled) selects the form schema. Field
values are passed with repeated --set flags; the photo comes from --photo
(an image file) or --frame (a file holding a captured base64 data URI).
The form is walked section by section, so the same validation applies as
in the browser console.

Example:
  faceconsole register man --set name=Ali --set dob=1990-01-01 \
    --set national_id=12345 --set phone=0501234567 \
    --set address="12 Main St" --photo ./ali.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringSlice("set", nil, "Field value as name=value (repeatable)")
	registerCmd.Flags().String("photo", "", "Path to the photo file (JPEG or PNG)")
	registerCmd.Flags().String("frame", "", "Path to a file holding a captured base64 frame")
	registerCmd.Flags().Bool("inline", false, "Send the image as base64 JSON instead of multipart")
	registerCmd.Flags().Bool("no-verify", false, "Skip waiting for face processing confirmation")
}

// applyFieldFlags parses --set name=value pairs into the draft, rejecting
// fields the category schema does not know.
func applyFieldFlags(draft *form.Draft, pairs []string) error {
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --set value %q, expected name=value", pair)
		}
		if _, known := draft.Schema().FieldByName(name); !known {
			return fmt.Errorf("unknown field %q for category %s", name, draft.Schema().Category)
		}
		draft.SetField(name, value)
	}
	return nil
}

// attachPhoto loads the photo flags into the draft's acquisition state.
func attachPhoto(draft *form.Draft, photoPath, framePath string) error {
	if photoPath != "" {
		data, err := os.ReadFile(photoPath) //nolint:gosec // user-provided photo path
		if err != nil {
			return fmt.Errorf("cannot read photo %s: %w", photoPath, err)
		}
		draft.Image().SetFile(&capture.File{
			Name: photoPath,
			MIME: http.DetectContentType(data),
			Data: data,
		})
		return nil
	}
	if framePath != "" {
		data, err := os.ReadFile(framePath) //nolint:gosec // user-provided frame path
		if err != nil {
			return fmt.Errorf("cannot read frame %s: %w", framePath, err)
		}
		draft.Image().SetFrame(strings.TrimSpace(string(data)))
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	schema, err := form.Lookup(form.Category(args[0]))
	if err != nil {
		return err
	}

	draft := form.NewDraft(schema)
	if err := applyFieldFlags(draft, mustGetStringSlice(cmd, "set")); err != nil {
		return err
	}
	if err := attachPhoto(draft, mustGetString(cmd, "photo"), mustGetString(cmd, "frame")); err != nil {
		return err
	}

	// Walk the sections; stop on the first one that fails validation.
	for !draft.OnLastSection() {
		if !draft.GoNext() {
			fmt.Printf("Section %q is incomplete:\n", draft.CurrentSection().Name)
			for _, msg := range draft.Errors() {
				fmt.Printf("  - %s\n", msg)
			}
			return fmt.Errorf("validation failed on section %q", draft.CurrentSection().Name)
		}
	}

	client, err := faceapi.NewWithCapture(cfg.API.URL, cfg.API.Timeout, captureDir)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	cache, err := register.NewDraftCache(cfg.Draft.Dir)
	if err != nil {
		fmt.Printf("Warning: draft recovery disabled: %v\n", err)
		cache = nil
	}

	pipeline := register.NewPipeline(client, cache)
	pipeline.SetInline(mustGetBool(cmd, "inline"))

	result, err := pipeline.Submit(cmd.Context(), draft)
	if err != nil {
		return err
	}

	fmt.Printf("Registered user %s\n", result.UserID)
	if result.FaceID != "" {
		fmt.Printf("Face ID: %s\n", result.FaceID)
	}

	if mustGetBool(cmd, "no-verify") || result.UserID == "" {
		return nil
	}

	image, err := register.NormalizeImage(draft.Image())
	if err != nil {
		return nil
	}

	fmt.Println("Waiting for face processing confirmation...")
	if verify.New(client).Confirm(context.Background(), result.UserID, image) {
		fmt.Println("Face processing confirmed")
	} else {
		fmt.Println("Face processing not confirmed yet; identification may lag behind")
	}
	return nil
}
