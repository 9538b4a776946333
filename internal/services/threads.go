package services

import (
	"sort"
	"strings"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
)

// Thread is the derived view over all messages sharing a thread id. Threads
// are recomputed on every read; they have no storage of their own.
type Thread struct {
	ThreadID      string           `json:"thread_id"`
	LatestMessage models.Message   `json:"latest_message"`
	MessageCount  int              `json:"message_count"`
	HasUnread     bool             `json:"has_unread"`
	Messages      []models.Message `json:"messages,omitempty"`
}

// ThreadSort selects the ordering of a thread list.
type ThreadSort string

const (
	SortDateDesc ThreadSort = "date_desc"
	SortDateAsc  ThreadSort = "date_asc"
	SortSender   ThreadSort = "sender"
	SortPriority ThreadSort = "priority"
)

// ValidThreadSort reports whether s names a known sort order.
func ValidThreadSort(s ThreadSort) bool {
	switch s {
	case SortDateDesc, SortDateAsc, SortSender, SortPriority:
		return true
	}
	return false
}

// ThreadFilter narrows a thread list. Search is a case-insensitive
// substring match over subject, body, and sender name.
type ThreadFilter struct {
	UnreadOnly bool
	Category   string
	Search     string
}

// AggregateThreads partitions a flat message set into threads, computes
// per-thread summaries, then filters and orders the list. It is a pure
// function of its inputs: UIs may poll it freely without affecting read
// state.
func AggregateThreads(messages []models.Message, filter ThreadFilter, sortBy ThreadSort) []Thread {
	if !ValidThreadSort(sortBy) {
		sortBy = SortDateDesc
	}

	// Partition by thread id, preserving first-seen order so equal sort
	// keys keep a stable result.
	order := make([]string, 0)
	byThread := make(map[string][]models.Message)
	for _, m := range messages {
		if _, seen := byThread[m.ThreadID]; !seen {
			order = append(order, m.ThreadID)
		}
		byThread[m.ThreadID] = append(byThread[m.ThreadID], m)
	}

	threads := make([]Thread, 0, len(order))
	for _, id := range order {
		t := buildThread(id, byThread[id])
		if matchThread(&t, filter) {
			threads = append(threads, t)
		}
	}

	sortThreads(threads, sortBy)
	return threads
}

// buildThread computes the summary for one partition. Messages within a
// thread always display newest first.
func buildThread(threadID string, msgs []models.Message) Thread {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})

	t := Thread{
		ThreadID:      threadID,
		LatestMessage: msgs[0],
		MessageCount:  len(msgs),
		Messages:      msgs,
	}
	for _, m := range msgs {
		if !m.IsRead {
			t.HasUnread = true
			break
		}
	}
	return t
}

// matchThread applies folder-level filters to a thread summary.
func matchThread(t *Thread, filter ThreadFilter) bool {
	if filter.UnreadOnly && !t.HasUnread {
		return false
	}

	if filter.Category != "" {
		found := false
		for _, m := range t.Messages {
			if strings.EqualFold(m.Category, filter.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		found := false
		for _, m := range t.Messages {
			if strings.Contains(strings.ToLower(m.Subject), needle) ||
				strings.Contains(strings.ToLower(m.Body), needle) ||
				strings.Contains(strings.ToLower(m.SenderName), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// sortThreads orders the thread list. Ties keep their existing, stable
// order.
func sortThreads(threads []Thread, sortBy ThreadSort) {
	switch sortBy {
	case SortDateAsc:
		sort.SliceStable(threads, func(i, j int) bool {
			return threads[i].LatestMessage.CreatedAt.Before(threads[j].LatestMessage.CreatedAt)
		})
	case SortSender:
		sort.SliceStable(threads, func(i, j int) bool {
			return strings.ToLower(threads[i].LatestMessage.SenderName) <
				strings.ToLower(threads[j].LatestMessage.SenderName)
		})
	case SortPriority:
		sort.SliceStable(threads, func(i, j int) bool {
			return threads[i].LatestMessage.Priority.Rank() >
				threads[j].LatestMessage.Priority.Rank()
		})
	default: // SortDateDesc
		sort.SliceStable(threads, func(i, j int) bool {
			return threads[i].LatestMessage.CreatedAt.After(threads[j].LatestMessage.CreatedAt)
		})
	}
}
