package main

import (
	"strconv"
	"strings"

	"netgro/internal/models"
	"netgro/internal/service"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show your profile or another member's",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := "profile"
		if len(args) == 1 {
			token += "/" + args[0]
		}
		return open(cmd, token)
	},
}

var profileInput service.SaveProfileInput

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Update name, headline, bio, skills or avatar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		me := rt.Auth.CurrentUser(cmd.Context())
		if me == nil {
			return models.ErrUnauthenticated
		}

		// Flags that were not given keep their stored value.
		in := service.SaveProfileInput{
			Name:     me.Name,
			Headline: me.Headline,
			Bio:      me.Bio,
			Skills:   strings.Join(me.Skills, ", "),
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = profileInput.Name
		}
		if flags.Changed("headline") {
			in.Headline = profileInput.Headline
		}
		if flags.Changed("bio") {
			in.Bio = profileInput.Bio
		}
		if flags.Changed("skills") {
			in.Skills = profileInput.Skills
		}
		if avatarPath != "" {
			avatar, err := loadImage(cmd, avatarPath)
			if err != nil {
				return err
			}
			in.Avatar = avatar
		}

		if _, err := rt.Profiles.SaveProfile(cmd.Context(), in); err != nil {
			return err
		}
		success("Profile saved")
		return nil
	},
}

var education models.Education

var eduCmd = &cobra.Command{
	Use:   "edu",
	Short: "Manage your education history",
}

var eduAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an education entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Profiles.AddEducation(cmd.Context(), education); err != nil {
			return err
		}
		success("Education added")
		return nil
	},
}

var eduRmCmd = &cobra.Command{
	Use:   "rm <index>",
	Short: "Remove an education entry by its 1-based index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := rt.Profiles.RemoveEducation(cmd.Context(), index); err != nil {
			return err
		}
		success("Education removed")
		return nil
	},
}

var experience models.Experience

var expCmd = &cobra.Command{
	Use:   "exp",
	Short: "Manage your work experience",
}

var expAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an experience entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Profiles.AddExperience(cmd.Context(), experience); err != nil {
			return err
		}
		success("Experience added")
		return nil
	},
}

var expRmCmd = &cobra.Command{
	Use:   "rm <index>",
	Short: "Remove an experience entry by its 1-based index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := rt.Profiles.RemoveExperience(cmd.Context(), index); err != nil {
			return err
		}
		success("Experience removed")
		return nil
	},
}

// parseIndex converts a 1-based index as shown in tables to a slice index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.NewValidationError("index must be a number")
	}
	return n - 1, nil
}

func init() {
	f := profileSaveCmd.Flags()
	f.StringVar(&profileInput.Name, "name", "", "Full name")
	f.StringVar(&profileInput.Headline, "headline", "", "Headline")
	f.StringVar(&profileInput.Bio, "bio", "", "About you")
	f.StringVar(&profileInput.Skills, "skills", "", "Comma separated skills")
	f.StringVar(&avatarPath, "avatar", "", "Path to an avatar image")

	eduAddCmd.Flags().StringVar(&education.School, "school", "", "School")
	eduAddCmd.Flags().StringVar(&education.Degree, "degree", "", "Degree")
	eduAddCmd.Flags().StringVar(&education.Years, "years", "", "Years, e.g. 2018-2022")
	expAddCmd.Flags().StringVar(&experience.Title, "title", "", "Job title")
	expAddCmd.Flags().StringVar(&experience.Company, "company", "", "Company")
	expAddCmd.Flags().StringVar(&experience.Years, "years", "", "Years, e.g. 2022-present")

	eduCmd.AddCommand(eduAddCmd, eduRmCmd)
	expCmd.AddCommand(expAddCmd, expRmCmd)
	profileCmd.AddCommand(profileShowCmd, profileSaveCmd, eduCmd, expCmd)
	rootCmd.AddCommand(profileCmd)
}
