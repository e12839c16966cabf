package main

import (
	"fmt"

	"netgro/internal/service"

	"github.com/spf13/cobra"
)

var registerInput service.RegisterInput
var avatarPath string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := registerInput
		if avatarPath != "" {
			avatar, err := loadImage(cmd, avatarPath)
			if err != nil {
				return err
			}
			in.Avatar = avatar
		}
		user, err := rt.Auth.Register(cmd.Context(), in)
		if err != nil {
			return err
		}
		success("Welcome to NetGRO, %s", user.DisplayName())
		return nil
	},
}

var loginInput service.LoginInput

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := rt.Auth.Login(cmd.Context(), loginInput)
		if err != nil {
			return err
		}
		success("Signed in as %s", user.DisplayName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Auth.Logout(cmd.Context()); err != nil {
			return err
		}
		success("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user := rt.Auth.CurrentUser(cmd.Context())
		if user == nil {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", user.DisplayName(), user.Email, user.ID)
		return nil
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&registerInput.Name, "name", "", "Full name")
	f.StringVar(&registerInput.Email, "email", "", "Email address")
	f.StringVar(&registerInput.Password, "password", "", "Password")
	f.StringVar(&registerInput.Headline, "headline", "", "Short professional headline")
	f.StringVar(&avatarPath, "avatar", "", "Path to an avatar image")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginInput.Email, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginInput.Password, "password", "", "Password")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
