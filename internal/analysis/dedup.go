package analysis

import "TrendEngine/internal/domain"

// TagForumPosts marks each current post as new or returning by URL. A
// returning post gets its prior score and the change since. The input is
// not modified.
func TagForumPosts(current, prior map[string][]domain.ForumPost) map[string][]domain.ForumPost {
	if current == nil {
		return nil
	}

	priorByURL := map[string]domain.ForumPost{}
	for _, community := range sortedKeys(prior) {
		for _, post := range prior[community] {
			if post.URL != "" {
				priorByURL[post.URL] = post
			}
		}
	}

	tagged := make(map[string][]domain.ForumPost, len(current))
	for community, posts := range current {
		out := make([]domain.ForumPost, len(posts))
		for i, post := range posts {
			previous, returning := priorByURL[post.URL]
			if post.URL == "" {
				returning = false
			}

			isNew := !returning
			post.IsNew = &isNew
			post.PriorScore = nil
			post.ScoreDelta = nil
			if returning {
				priorScore := previous.Score
				delta := post.Score - previous.Score
				post.PriorScore = &priorScore
				post.ScoreDelta = &delta
			}
			out[i] = post
		}
		tagged[community] = out
	}
	return tagged
}
