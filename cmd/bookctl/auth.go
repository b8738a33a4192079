package main

import (
	"fmt"

	"bookctl/internal/authgate"
	"bookctl/internal/models"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long: `Register an account with the booking service.

Examples:
  bookctl signup --name Ana --email ana@example.com --password hunter2
  bookctl signup --name Bob --email bob@example.com --password hunter2 --role admin`,
	RunE: runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	signupCmd.Flags().String("name", "", "user name")
	signupCmd.Flags().String("email", "", "email address")
	signupCmd.Flags().String("password", "", "password")
	signupCmd.Flags().String("role", models.RoleUser, "account role (user or admin)")

	loginCmd.Flags().String("email", "", "email address")
	loginCmd.Flags().String("password", "", "password")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runSignup(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	role, _ := cmd.Flags().GetString("role")

	if err := app.auth.SignUp(cmd.Context(), name, email, password, role); err != nil {
		return err
	}

	fmt.Println("Account created. You can now log in.")
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	session, target, err := app.auth.LogIn(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s).\n", session.Email, session.Role)
	switch target {
	case authgate.TargetAdmin:
		fmt.Println("Manage the catalog with \"bookctl events\".")
	default:
		fmt.Println("Browse the catalog with \"bookctl events list\".")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := app.auth.LogOut(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	session, ok, err := app.auth.Current(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s (%s), user id %d\n", session.Email, session.Role, session.UserID)
	return nil
}
