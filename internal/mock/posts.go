// Package mock synthesizes board data for offline development. Records
// are derived from their numeric id so the same id always yields the same
// title, author and tags; only the engagement counters are random.
package mock

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/existflow/angple/internal/model"
)

// Total is the fixed size of every mock list
const Total = 100

// Default page sizes used when a caller passes a non-positive limit
const (
	DefaultPostLimit    = 20
	DefaultCommentLimit = 50
)

var titles = []string{
	"Sharing my experience with the Damoang platform",
	"What should I have for lunch today? Recommendations welcome",
	"The SvelteKit 5 update is great!",
	"Any good restaurants to visit this weekend?",
	"How do you study programming?",
	"The dark mode design looks really nice",
	"A proposal to make the community more active",
	"Coding started as a hobby, now it is my job",
	"Sharing an efficient code review process",
	"A day in the life of a startup developer",
	"React vs Svelte: my comparison",
	"Remote work tips",
	"Getting the most out of TypeScript types",
	"A guide to writing Git commit messages",
	"Docker for beginners",
	"Backend developer roadmap 2025",
	"PostgreSQL vs MySQL, which one?",
	"API design best practices",
	"Frontend performance tips",
	"Notes from the developer community meetup",
}

var contents = []string{
	"Hello! Today I want to share something I went through.\n\nI learned a lot on a recent project, especially about improving user experience.\n\nI would love to hear your thoughts!",
	"I went on a food tour with friends over the weekend.\n\nThere were so many good places. The pasta place near Gangnam station is a must!\n\nHave a great weekend everyone~",
	"Learning new technology is always fun.\n\nIt looked hard at first, but it got more interesting one piece at a time.\n\nThe key is to keep going!",
	"The weather is really nice these days.\n\nA walk outside is the best on days like this.\n\nHow do you usually spend your time?",
	"Thanks for your hard work today!\n\nI hope tomorrow brings only good things.\n\nCheers everyone!",
}

var authors = []string{
	"DevKimCheolsu",
	"LoveCoding",
	"FrontendMaster",
	"BackendExpert",
	"FullstackDev",
	"JuniorDev",
	"SeniorDev",
	"DesignerLeeYounghee",
	"PlannerParkMinsu",
	"OperatorChoiYoungsu",
}

var tags = [][]string{
	{"dev", "TIP", "share"},
	{"daily", "food", "restaurants"},
	{"question", "curious"},
	{"review", "impressions"},
	{"tech", "dev"},
	{"frontend", "JavaScript"},
	{"backend", "Go", "API"},
	{"database", "PostgreSQL"},
	{"DevOps", "Docker"},
	{"career", "jobs"},
}

// Generator builds mock records. The zero value is not usable; call New.
type Generator struct {
	mu   sync.Mutex
	rand *rand.Rand
	now  func() time.Time
}

// New returns a generator seeded from the clock
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()), time.Now)
}

// NewWithSource returns a generator with a fixed random source and clock
func NewWithSource(src rand.Source, now func() time.Time) *Generator {
	return &Generator{rand: rand.New(src), now: now}
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rand.Intn(n)
}

func (g *Generator) post(id int) model.FreePost {
	created := g.now().Add(-time.Duration(id*2) * time.Hour).UTC().Format(time.RFC3339)
	idx := nonNegative(id)

	postTags := make([]string, len(tags[idx%len(tags)]))
	copy(postTags, tags[idx%len(tags)])

	return model.FreePost{
		ID:            strconv.Itoa(id),
		Title:         titles[idx%len(titles)],
		Content:       contents[idx%len(contents)],
		Author:        authors[idx%len(authors)],
		AuthorID:      fmt.Sprintf("user_%d", idx%10),
		Views:         g.intn(1000) + 50,
		Likes:         g.intn(100),
		CommentsCount: g.intn(50),
		CreatedAt:     created,
		UpdatedAt:     created,
		Tags:          postTags,
	}
}

// FreePosts returns one page of the fixed 100-post list
func (g *Generator) FreePosts(page, limit int) model.Page[model.FreePost] {
	page, limit = normalize(page, limit, DefaultPostLimit)
	start, n := window(page, limit)

	posts := make([]model.FreePost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, g.post(start+i+1))
	}

	return model.Page[model.FreePost]{
		Items:      posts,
		Total:      Total,
		Page:       page,
		Limit:      limit,
		TotalPages: model.TotalPages(Total, limit),
	}
}

// FreePost returns the detail view of a post. Ids that do not parse as a
// positive integer resolve to post 1.
func (g *Generator) FreePost(id string) model.FreePost {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		n = 1
	}

	post := g.post(n)
	post.Content = fmt.Sprintf(detailTemplate, post.Title, post.Author)
	return post
}

func normalize(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return page, limit
}

// window returns the offset and item count of page. Pages past the last
// one are empty; the check runs before the offset is computed so huge
// page numbers cannot overflow.
func window(page, limit int) (start, n int) {
	if page > model.TotalPages(Total, limit) {
		return 0, 0
	}
	start = (page - 1) * limit
	n = Total - start
	if n > limit {
		n = limit
	}
	return start, n
}

func nonNegative(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

const detailTemplate = `# %s

Hello, this is %s.

## Introduction

Today I want to share what I went through in detail. I hope it helps some of you.

## Body

I learned a lot on a recent project, especially these points:

1. **User experience matters**: how comfortable users feel beats technically perfect features.
2. **Readable code**: write it clean from the start and maintenance gets easier.
3. **Teamwork**: working well with the team beats being good alone.

## Conclusion

These experiences helped me grow. Have you been through something similar?

Please share your thoughts in the comments!

Thank you.`
