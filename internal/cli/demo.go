package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/angple/internal/demo"
	"github.com/existflow/angple/internal/model"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Use the demo backend board",
	Long:  `Read and write posts on the demo backend (see angple-server).`,
}

var demoHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the demo backend",
	RunE:  runDemoHealth,
}

var demoLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the development account",
	RunE:  runDemoLogin,
}

var demoPostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts",
	RunE:  runDemoPosts,
}

var demoPostCmd = &cobra.Command{
	Use:   "post <id>",
	Short: "Read a post (counts as a view)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoPost,
}

var demoWriteCmd = &cobra.Command{
	Use:   "write <title> <content>",
	Short: "Create a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runDemoWrite,
}

var demoCommentCmd = &cobra.Command{
	Use:   "comment <post-id> <content>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runDemoComment,
}

var (
	demoAuthor string
	demoEmail  string
)

func init() {
	demoCmd.AddCommand(demoHealthCmd)
	demoCmd.AddCommand(demoLoginCmd)
	demoCmd.AddCommand(demoPostsCmd)
	demoCmd.AddCommand(demoPostCmd)
	demoCmd.AddCommand(demoWriteCmd)
	demoCmd.AddCommand(demoCommentCmd)

	demoLoginCmd.Flags().StringVar(&demoEmail, "email", "", "Account email")
	demoWriteCmd.Flags().StringVarP(&demoAuthor, "author", "a", "", "Author name")
	demoCommentCmd.Flags().StringVarP(&demoAuthor, "author", "a", "", "Author name")
}

func demoClient() *demo.Client {
	return demo.NewClient(cfg.DemoURL)
}

func author() string {
	if demoAuthor != "" {
		return demoAuthor
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

func runDemoHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	h, err := demoClient().Health(ctx)
	if err != nil {
		return err
	}
	successColor.Printf("✅ %s %s is %s\n", h.Service, h.Version, h.Status)
	dimColor.Println(h.Timestamp)
	return nil
}

func runDemoLogin(cmd *cobra.Command, args []string) error {
	if demoEmail == "" {
		demoEmail = prompt(bufio.NewReader(os.Stdin), "Email: ")
	}

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	fmt.Println("🔄 Logging in...")
	resp, err := demoClient().Login(ctx, demoEmail, string(passwordBytes))
	if err != nil {
		return err
	}

	successColor.Printf("✅ %s\n", resp.Message)
	if resp.User != nil {
		fmt.Printf("Signed in as %s <%s> (%s)\n", resp.User.Name, resp.User.Email, resp.User.Role)
	}
	return nil
}

func runDemoPosts(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	posts, err := demoClient().ListPosts(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts yet. Write one with: angple demo write \"Title\" \"Content\"")
		return nil
	}

	table := newTable("ID", "Title", "Author", "Views", "Comments", "Created")
	for _, p := range posts {
		title := truncate(p.Title, 48)
		if p.IsNotice {
			title = "📌 " + title
		}
		table.Append([]string{
			strconv.Itoa(p.ID),
			title,
			p.Author,
			strconv.Itoa(p.ViewCount),
			strconv.Itoa(p.CommentCount),
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

func runDemoPost(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	post, err := demoClient().GetPost(ctx, id)
	if err != nil {
		return err
	}

	fmt.Println()
	labelColor.Printf("#%d %s\n", post.ID, post.Title)
	dimColor.Printf("%s · %s · %d views\n", post.Author, post.CreatedAt.Local().Format("2006-01-02 15:04"), post.ViewCount)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println(post.Content)
	if len(post.Comments) > 0 {
		fmt.Println()
		for _, c := range post.Comments {
			fmt.Printf("  %s %s\n", labelColor.Sprintf("%s:", c.Author), c.Content)
		}
	}
	fmt.Println()
	return nil
}

func runDemoWrite(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	post, err := demoClient().CreatePost(ctx, model.NewPost{Title: args[0], Content: args[1], Author: author()})
	if err != nil {
		return err
	}
	successColor.Printf("✅ Post #%d created\n", post.ID)
	return nil
}

func runDemoComment(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	comment, err := demoClient().AddComment(ctx, id, model.NewComment{Author: author(), Content: args[1]})
	if err != nil {
		return err
	}
	successColor.Printf("✅ Comment #%d added to post #%d\n", comment.ID, id)
	return nil
}
