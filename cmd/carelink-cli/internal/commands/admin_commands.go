package commands

import (
	"fmt"
	"strings"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// AdminCommandHandler handles schema and account bootstrap commands
type AdminCommandHandler struct{}

// MigrateCmd creates or updates the database schema
func (commandHandler *AdminCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	_, db, log, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = persistence.CloseDB(db) }()

	if err := persistence.Migrate(db); err != nil {
		return err
	}
	log.Info("Database migrations completed successfully")
	return nil
}

// CreateAdminCmd creates an account with any role, including ADMIN and STAFF
func (commandHandler *AdminCommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	email, _ := flags.GetString("email")
	password, _ := flags.GetString("password")
	firstName, _ := flags.GetString("first-name")
	lastName, _ := flags.GetString("last-name")
	role, _ := flags.GetString("role")

	p, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	user, err := p.services.Users.CreatePrivileged(cmd.Context(), &users.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      users.Role(strings.ToUpper(role)),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	p.logger.Info("User created", "user_id", user.ID, "role", string(user.Role))
	return printJSON(cmd.OutOrStdout(), map[string]string{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
	})
}

// InitAdminCommands registers the migrate and create-admin commands
func InitAdminCommands(rootCmd *cobra.Command) error {
	handler := &AdminCommandHandler{}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	createAdminCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator, or with --role any privileged account",
		RunE:  handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().String("email", "", "Account email")
	createAdminCmd.Flags().String("password", "", "Account password (min 8 characters)")
	createAdminCmd.Flags().String("first-name", "", "First name")
	createAdminCmd.Flags().String("last-name", "", "Last name")
	createAdminCmd.Flags().String("role", string(users.RoleAdmin), "Role: ADMIN, STAFF, OPERATOR, CAREGIVER, FAMILY, AFFILIATE or PROVIDER")
	for _, name := range []string{"email", "password", "first-name", "last-name"} {
		if err := createAdminCmd.MarkFlagRequired(name); err != nil {
			return fmt.Errorf("failed to mark %s flag as required: %w", name, err)
		}
	}
	rootCmd.AddCommand(createAdminCmd)

	return nil
}
