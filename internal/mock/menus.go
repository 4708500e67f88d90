package mock

import "github.com/existflow/angple/internal/model"

// Menus returns the sidebar menu tree
func Menus() []model.MenuItem {
	return []model.MenuItem{
		{
			ID: 1, Title: "Community", URL: "#", Icon: "MessageSquare", Depth: 0, OrderNum: 1,
			Target: "_self", ShowInHeader: true, ShowInSidebar: true,
			Children: []model.MenuItem{
				{ID: 11, ParentID: 1, Title: "Free board", URL: "/free", Icon: "Circle", Depth: 1, OrderNum: 1, Target: "_self", ShowInSidebar: true},
				{ID: 12, ParentID: 1, Title: "Q&A", URL: "/qna", Icon: "CircleHelp", Depth: 1, OrderNum: 2, Target: "_self", ShowInSidebar: true},
			},
		},
		{
			ID: 2, Title: "Groups", URL: "#", Icon: "Users", Depth: 0, OrderNum: 2,
			Target: "_self", ShowInHeader: true, ShowInSidebar: true,
			Children: []model.MenuItem{
				{ID: 21, ParentID: 2, Title: "All groups", URL: "/groups", Icon: "Circle", Depth: 1, OrderNum: 1, Target: "_self", ShowInSidebar: true},
			},
		},
		{ID: 3, Title: "Gallery", URL: "/gallery", Icon: "Images", Depth: 0, OrderNum: 3, Target: "_self", ShowInHeader: true, ShowInSidebar: true},
		{ID: 4, Title: "Bargains", URL: "/economy", Icon: "ShoppingCart", Depth: 0, OrderNum: 4, Target: "_self", ShowInHeader: true, ShowInSidebar: true},
	}
}
