package engine

import (
	"slices"

	"github.com/MKhiriev/go-feed-client/models"
)

func indexOf(posts []models.Post, id int32) int {
	return slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == id })
}

// uniquePosts returns batch without repeated ids. The first occurrence of an
// id wins and order is kept.
func uniquePosts(batch []models.Post) []models.Post {
	seen := make(map[int32]struct{}, len(batch))
	out := make([]models.Post, 0, len(batch))
	for _, p := range batch {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// upsertPost replaces the post with the same id in place, or appends p.
func upsertPost(posts []models.Post, p models.Post) []models.Post {
	if i := indexOf(posts, p.ID); i >= 0 {
		posts[i] = p
		return posts
	}
	return append(posts, p)
}

// removePosts drops every post whose id is in ids, keeping the order of the
// rest. It reports whether anything was removed.
func removePosts(posts []models.Post, ids []int32) ([]models.Post, bool) {
	if len(ids) == 0 || len(posts) == 0 {
		return posts, false
	}

	drop := make(map[int32]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := drop[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out, len(out) != len(posts)
}
