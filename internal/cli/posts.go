package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/angple/internal/model"
	"github.com/existflow/angple/internal/recommend"
)

var postsCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"ls"},
	Short:   "List free-board posts",
	Long: `List free-board posts one page at a time.

Examples:
  angple posts
  angple posts --page 3 --limit 20`,
	Args: cobra.NoArgs,
	RunE: runPosts,
}

var postCmd = &cobra.Command{
	Use:   "post <id>",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPost,
}

var commentsCmd = &cobra.Command{
	Use:   "comments <post-id>",
	Short: "List the comments of a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runComments,
}

var (
	postsPage     int
	postsLimit    int
	commentsPage  int
	commentsLimit int
)

func init() {
	postsCmd.Flags().IntVarP(&postsPage, "page", "p", 1, "Page number")
	postsCmd.Flags().IntVarP(&postsLimit, "limit", "n", 10, "Posts per page")
	commentsCmd.Flags().IntVarP(&commentsPage, "page", "p", 1, "Page number")
	commentsCmd.Flags().IntVarP(&commentsLimit, "limit", "n", 20, "Comments per page")
}

func runPosts(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.client.GetFreePosts(ctx, postsPage, postsLimit)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No posts on this page.")
		return nil
	}

	table := newTable("ID", "Title", "Author", "Views", "Likes", "Comments", "Tags")
	for _, p := range page.Items {
		table.Append([]string{
			p.ID,
			truncate(p.Title, 48),
			p.Author,
			recommend.FormatNumber(int64(p.Views)),
			strconv.Itoa(p.Likes),
			strconv.Itoa(p.CommentsCount),
			strings.Join(p.Tags, ", "),
		})
	}
	table.Render()

	fmt.Printf("Page %d/%d · %d posts · %s\n", page.Page, page.TotalPages, page.Total, modeLabel(s.client.IsMockMode()))
	return nil
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	post, err := s.client.GetFreePost(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load post: %w", err)
	}

	printFreePost(post)
	return nil
}

func printFreePost(p *model.FreePost) {
	fmt.Println()
	labelColor.Printf("#%s %s\n", p.ID, p.Title)
	dimColor.Printf("%s · %s · %d views · %d likes · %d comments\n",
		p.Author, p.CreatedAt, p.Views, p.Likes, p.CommentsCount)
	if len(p.Tags) > 0 {
		dimColor.Printf("tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println(p.Content)
	fmt.Println()
}

func runComments(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.client.GetFreeComments(ctx, args[0], commentsPage, commentsLimit)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	for _, c := range page.Items {
		indent := strings.Repeat("  ", c.Depth)
		marker := ""
		if c.Depth > 0 {
			marker = "↳ "
		}
		fmt.Printf("%s%s%s %s\n", indent, marker, labelColor.Sprint(c.Author), dimColor.Sprintf("(%d likes)", c.Likes))
		for _, line := range strings.Split(c.Content, "\n") {
			fmt.Printf("%s  %s\n", indent, line)
		}
	}
	fmt.Printf("\nPage %d/%d · %d comments\n", page.Page, page.TotalPages, page.Total)
	return nil
}
