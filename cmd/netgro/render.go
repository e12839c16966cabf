package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"netgro/internal/models"
	"netgro/internal/router"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor  = color.New(color.FgHiCyan, color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
	noticeColor = color.New(color.FgHiYellow)
)

// textRenderer draws router pages as plain text and tables.
type textRenderer struct {
	out io.Writer
}

func newTextRenderer(out io.Writer) *textRenderer {
	return &textRenderer{out: out}
}

func (r *textRenderer) RenderLanding(ctx context.Context) error {
	titleColor.Fprintln(r.out, "NetGRO")
	fmt.Fprintln(r.out, "Grow your professional network: share updates, follow classmates and colleagues.")
	fmt.Fprintln(r.out)
	mutedColor.Fprintln(r.out, "netgro register --name <name> --email <email> --password <password>")
	mutedColor.Fprintln(r.out, "netgro login --email <email> --password <password>")
	return nil
}

func (r *textRenderer) RenderAuth(ctx context.Context, mode router.AuthMode) error {
	if mode == router.AuthRegister {
		titleColor.Fprintln(r.out, "Create your account")
		mutedColor.Fprintln(r.out, "netgro register --name <name> --email <email> --password <password> [--headline <text>] [--avatar <file>]")
		return nil
	}
	titleColor.Fprintln(r.out, "Sign in")
	mutedColor.Fprintln(r.out, "netgro login --email <email> --password <password>")
	return nil
}

func (r *textRenderer) RenderFeed(ctx context.Context, items []models.FeedItem) error {
	titleColor.Fprintln(r.out, "Feed")
	if len(items) == 0 {
		fmt.Fprintln(r.out, "🤷 No posts yet. Start the conversation with: netgro post new \"...\"")
		return nil
	}

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Post", "Author", "Text", "👍", "💬", "Posted"})
	table.SetAutoWrapText(false)
	for _, item := range items {
		row := []string{
			item.Post.ID,
			item.Author.Name,
			excerpt(item.Post.Content, 60) + imageSuffix(item.Post.Images),
			strconv.Itoa(item.LikesCount),
			strconv.Itoa(item.CommentsCount),
			humanize.Time(item.Post.CreatedAt),
		}
		if item.LikedByViewer {
			green := tablewriter.Colors{tablewriter.FgHiGreenColor}
			table.Rich(row, []tablewriter.Colors{green, green, green, {tablewriter.FgHiGreenColor, tablewriter.Bold}, green, green})
			continue
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func (r *textRenderer) RenderProfile(ctx context.Context, profile *models.Profile) error {
	u := profile.User
	titleColor.Fprintln(r.out, u.DisplayName())
	if u.Headline != "" {
		fmt.Fprintln(r.out, u.Headline)
	}
	if profile.Self {
		mutedColor.Fprintln(r.out, u.Email)
	}
	if u.Bio != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, u.Bio)
	}
	if len(u.Skills) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Skills: "+strings.Join(u.Skills, " · "))
	}

	if len(u.Education) > 0 {
		fmt.Fprintln(r.out)
		table := tablewriter.NewWriter(r.out)
		table.SetHeader([]string{"#", "School", "Degree", "Years"})
		for i, e := range u.Education {
			table.Append([]string{strconv.Itoa(i + 1), e.School, e.Degree, e.Years})
		}
		table.Render()
	}
	if len(u.Experience) > 0 {
		fmt.Fprintln(r.out)
		table := tablewriter.NewWriter(r.out)
		table.SetHeader([]string{"#", "Title", "Company", "Years"})
		for i, e := range u.Experience {
			table.Append([]string{strconv.Itoa(i + 1), e.Title, e.Company, e.Years})
		}
		table.Render()
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Posts (%d)\n", len(profile.Posts))
	for _, p := range profile.Posts {
		fmt.Fprintf(r.out, "  %s  %s  %s\n", mutedColor.Sprint(p.ID), excerpt(p.Content, 70), mutedColor.Sprint(humanize.Time(p.CreatedAt)))
	}
	return nil
}

func (r *textRenderer) RenderPost(ctx context.Context, item *models.FeedItem) error {
	titleColor.Fprintf(r.out, "%s", item.Author.Name)
	if item.Author.Headline != "" {
		mutedColor.Fprintf(r.out, "  %s", item.Author.Headline)
	}
	fmt.Fprintln(r.out)
	mutedColor.Fprintln(r.out, item.Post.ID+" · "+humanize.Time(item.Post.CreatedAt))
	fmt.Fprintln(r.out)
	if item.Post.Content != "" {
		fmt.Fprintln(r.out, item.Post.Content)
	}
	if n := len(item.Post.Images); n > 0 {
		mutedColor.Fprintf(r.out, "[%d image(s) attached]\n", n)
	}

	like := "👍"
	if item.LikedByViewer {
		like = color.New(color.FgHiGreen, color.Bold).Sprint("👍 you")
	}
	fmt.Fprintf(r.out, "\n%s %d   💬 %d\n", like, item.LikesCount, item.CommentsCount)

	if len(item.Comments) > 0 {
		table := tablewriter.NewWriter(r.out)
		table.SetHeader([]string{"Author", "Comment", "When"})
		table.SetAutoWrapText(false)
		for _, c := range item.Comments {
			table.Append([]string{c.Author.Name, c.Content, humanize.Time(c.CreatedAt)})
		}
		table.Render()
	}
	if item.CanDelete {
		mutedColor.Fprintln(r.out, "netgro post rm "+item.Post.ID)
	}
	return nil
}

func (r *textRenderer) Notify(ctx context.Context, message string) {
	noticeColor.Fprintln(r.out, "👉 "+message)
}

// excerpt returns the first line of s cut to limit runes.
func excerpt(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return s
}

func imageSuffix(images []string) string {
	switch len(images) {
	case 0:
		return ""
	case 1:
		return " 🖼"
	default:
		return fmt.Sprintf(" 🖼×%d", len(images))
	}
}
