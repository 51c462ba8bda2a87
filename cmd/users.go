package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"faceconsole/internal/config"
	"faceconsole/internal/faceapi"
	"faceconsole/internal/roster"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse and manage the registered-person roster",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered persons",
	Long: `List registered persons with optional filtering and sorting.

The text query matches name, phone, national ID, employee ID, address, and
department. Filtering and sorting happen client-side over the full roster.

Example:
  faceconsole users list --query ali --sort created_at --desc
  faceconsole users list --category child --has-phone`,
	RunE: runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one registered person",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersGet,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a registered person",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersListCmd.Flags().String("query", "", "Free-text filter")
	usersListCmd.Flags().Bool("has-phone", false, "Only records with a phone number")
	usersListCmd.Flags().Bool("has-national-id", false, "Only records with a national ID")
	usersListCmd.Flags().String("category", "", "Filter by category (man, woman, child, disabled)")
	usersListCmd.Flags().String("form-type", "", "Filter by form type")
	usersListCmd.Flags().String("sort", "name", "Sort field: name or created_at")
	usersListCmd.Flags().Bool("desc", false, "Sort descending")
}

// newBackendClient builds the API client from config and the capture flag.
func newBackendClient() (*faceapi.Client, error) {
	cfg := config.Load()
	client, err := faceapi.NewWithCapture(cfg.API.URL, cfg.API.Timeout, captureDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// printUser writes one record in detail form.
func printUser(user *faceapi.User) {
	fmt.Printf("User:        %s\n", user.ID)
	fmt.Printf("Name:        %s\n", user.Name)
	fmt.Printf("Category:    %s\n", user.Category)
	if user.Phone != "" {
		fmt.Printf("Phone:       %s\n", user.Phone)
	}
	if user.NationalID != "" {
		fmt.Printf("National ID: %s\n", user.NationalID)
	}
	if user.Address != "" {
		fmt.Printf("Address:     %s\n", user.Address)
	}
	if user.FaceID != "" {
		fmt.Printf("Face ID:     %s\n", user.FaceID)
	} else {
		fmt.Printf("Face ID:     (not derived yet)\n")
	}
	if user.CreatedAt != "" {
		fmt.Printf("Created:     %s\n", user.CreatedAt)
	}
}

func runUsersList(cmd *cobra.Command, args []string) error {
	client, err := newBackendClient()
	if err != nil {
		return err
	}

	view := roster.NewView(client)
	users, err := view.FetchAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	filters := roster.Filters{
		Query:         mustGetString(cmd, "query"),
		HasPhone:      mustGetBool(cmd, "has-phone"),
		HasNationalID: mustGetBool(cmd, "has-national-id"),
		Category:      mustGetString(cmd, "category"),
		FormType:      mustGetString(cmd, "form-type"),
	}
	sortSpec := roster.Sort{Desc: mustGetBool(cmd, "desc")}
	if mustGetString(cmd, "sort") == "created_at" {
		sortSpec.Field = roster.SortByCreated
	} else {
		sortSpec.Field = roster.SortByName
	}

	derived := roster.Apply(users, filters, sortSpec)

	fmt.Printf("%-12s %-24s %-10s %-12s %s\n", "ID", "NAME", "CATEGORY", "PHONE", "FACE ID")
	for _, user := range derived {
		faceID := user.FaceID
		if faceID == "" {
			faceID = "-"
		}
		fmt.Printf("%-12s %-24s %-10s %-12s %s\n", user.ID, user.Name, user.Category, user.Phone, faceID)
	}
	fmt.Printf("\n%d of %d record(s)\n", len(derived), len(users))
	return nil
}

func runUsersGet(cmd *cobra.Command, args []string) error {
	client, err := newBackendClient()
	if err != nil {
		return err
	}

	user, err := client.GetUser(cmd.Context(), args[0])
	if err != nil {
		if faceapi.IsNotFound(err) {
			return fmt.Errorf("user %s not found", args[0])
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	printUser(user)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	client, err := newBackendClient()
	if err != nil {
		return err
	}

	if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
		if faceapi.IsNotFound(err) {
			return fmt.Errorf("user %s not found", args[0])
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("Deleted user %s\n", args[0])
	return nil
}
