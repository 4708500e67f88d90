package model

// FreePost is a free-board post
type FreePost struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	AuthorID      string   `json:"author_id"`
	Views         int      `json:"views"`
	Likes         int      `json:"likes"`
	CommentsCount int      `json:"comments_count"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	Tags          []string `json:"tags,omitempty"`
	Images        []string `json:"images,omitempty"`
}

// FreeComment is a comment on a free-board post. Replies point at their
// root through ParentID and carry their nesting level in Depth.
type FreeComment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	AuthorID  string `json:"author_id"`
	Likes     int    `json:"likes"`
	Depth     int    `json:"depth"`
	ParentID  string `json:"parent_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MenuItem is one entry of the sidebar menu tree
type MenuItem struct {
	ID            int        `json:"id"`
	ParentID      int        `json:"parent_id,omitempty"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Icon          string     `json:"icon,omitempty"`
	Depth         int        `json:"depth"`
	OrderNum      int        `json:"order_num"`
	Target        string     `json:"target"`
	ShowInHeader  bool       `json:"show_in_header"`
	ShowInSidebar bool       `json:"show_in_sidebar"`
	Children      []MenuItem `json:"children,omitempty"`
}
