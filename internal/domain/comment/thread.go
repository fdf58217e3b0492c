package comment

// Thread is a top-level comment with its direct replies.
type Thread struct {
	Comment
	Replies []Comment
}

// MainComments keeps comments without a parent, in input order.
func MainComments(list []Comment) []Comment {
	out := make([]Comment, 0, len(list))
	for _, c := range list {
		if c.IsMain() {
			out = append(out, c)
		}
	}
	return out
}

// Replies keeps comments whose parent is parentID, in input order.
func Replies(list []Comment, parentID string) []Comment {
	out := make([]Comment, 0)
	if parentID == "" {
		return out
	}
	for _, c := range list {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// BuildThreads groups a flat list one level deep. Replies to replies are not
// attached to any thread.
func BuildThreads(list []Comment) []Thread {
	byParent := make(map[string][]Comment)
	for _, c := range list {
		if !c.IsMain() {
			byParent[c.ParentID] = append(byParent[c.ParentID], c)
		}
	}

	mains := MainComments(list)
	threads := make([]Thread, 0, len(mains))
	for _, c := range mains {
		replies := byParent[c.ID]
		if replies == nil {
			replies = []Comment{}
		}
		threads = append(threads, Thread{Comment: c, Replies: replies})
	}
	return threads
}

// AuthorIDs returns the distinct author ids in first-seen order.
func AuthorIDs(list []Comment) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, c := range list {
		if _, ok := seen[c.AuthorID]; ok {
			continue
		}
		seen[c.AuthorID] = struct{}{}
		out = append(out, c.AuthorID)
	}
	return out
}
