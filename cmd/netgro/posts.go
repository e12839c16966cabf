package main

import (
	"context"

	"netgro/internal/media"
	"netgro/internal/service"

	"github.com/spf13/cobra"
)

var (
	postImages  []string
	postContent string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create, show and interact with posts",
}

var postNewCmd = &cobra.Command{
	Use:   "new [text]",
	Short: "Publish a post",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		content := postContent
		if len(args) == 1 {
			content = args[0]
		}
		images := make([]string, 0, len(postImages))
		for _, path := range postImages {
			img, err := loadImage(cmd, path)
			if err != nil {
				return err
			}
			images = append(images, img)
		}
		post, err := rt.Feed.CreatePost(cmd.Context(), service.CreatePostInput{
			AuthorID: userID,
			Content:  content,
			Images:   images,
		})
		if err != nil {
			return err
		}
		success("Posted %s", post.ID)
		return nil
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return open(cmd, "post/"+args[0])
	},
}

var postLikeCmd = &cobra.Command{
	Use:     "like <post-id>",
	Aliases: []string{"unlike"},
	Short:   "Like a post, or remove your like",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		if err := rt.Feed.ToggleLike(cmd.Context(), args[0], userID); err != nil {
			return err
		}
		post, err := rt.Feed.GetPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if post.LikedBy(userID) {
			success("Liked (%d)", len(post.Likes))
		} else {
			success("Like removed (%d)", len(post.Likes))
		}
		return nil
	},
}

var postCommentCmd = &cobra.Command{
	Use:   "comment <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := rt.Auth.CurrentUserID(cmd.Context())
		err := rt.Feed.AddComment(cmd.Context(), service.CreateCommentInput{
			PostID:   args[0],
			AuthorID: userID,
			Content:  args[1],
		})
		if err != nil {
			return err
		}
		success("Comment added")
		return nil
	},
}

var postRmCmd = &cobra.Command{
	Use:     "rm <post-id>",
	Aliases: []string{"delete"},
	Short:   "Delete one of your posts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		if err := removePost(cmd.Context(), args[0], userID); err != nil {
			return err
		}
		success("Post deleted")
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the feed, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return open(cmd, "feed")
	},
}

// removePost deletes postID and reports NOT_FOUND for an unknown id, which
// DeletePost itself ignores.
func removePost(ctx context.Context, postID, userID string) error {
	if _, err := rt.Feed.GetPost(ctx, postID); err != nil {
		return err
	}
	return rt.Feed.DeletePost(ctx, service.DeletePostInput{PostID: postID, RequesterID: userID})
}

// loadImage reads an image file into a data URL within the configured size limit.
func loadImage(cmd *cobra.Command, path string) (string, error) {
	return media.FromFile(cmd.Context(), path, rt.Config.MediaMaxBytes)
}

func init() {
	postNewCmd.Flags().StringSliceVarP(&postImages, "image", "i", nil, "Attach an image file (repeatable)")
	postNewCmd.Flags().StringVarP(&postContent, "text", "t", "", "Post text")

	postCmd.AddCommand(postNewCmd, postShowCmd, postLikeCmd, postCommentCmd, postRmCmd)
	rootCmd.AddCommand(postCmd, feedCmd)
}
