package http

import "github.com/mrlokans/navboard/internal/entities"

// publicCategories drops private categories.
func publicCategories(cats []entities.Category) []entities.Category {
	out := make([]entities.Category, 0, len(cats))
	for _, cat := range cats {
		if !cat.IsPrivate {
			out = append(out, cat)
		}
	}
	return out
}

// publicBookmarks drops private bookmarks and bookmarks filed under a private
// category. cats must be the full category list.
func publicBookmarks(bms []entities.Bookmark, cats []entities.Category) []entities.Bookmark {
	private := make(map[uint]bool, len(cats))
	for _, cat := range cats {
		if cat.IsPrivate {
			private[cat.ID] = true
		}
	}

	out := make([]entities.Bookmark, 0, len(bms))
	for _, bm := range bms {
		if bm.IsPrivate {
			continue
		}
		if bm.CategoryID != nil && private[*bm.CategoryID] {
			continue
		}
		out = append(out, bm)
	}
	return out
}
