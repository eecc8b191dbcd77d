package feed

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/pawpost/pawpost/internal/models"
)

type fakePostSource struct {
	posts []models.Post
	err   error

	lastMethod string
	lastLimit  int
	lastGroup  int64
	lastQuery  string
}

func (f *fakePostSource) ListGlobal(_ context.Context, limit int) ([]models.Post, error) {
	f.lastMethod, f.lastLimit = "global", limit
	return append([]models.Post(nil), f.posts...), f.err
}

func (f *fakePostSource) ListByGroup(_ context.Context, groupID int64, limit int) ([]models.Post, error) {
	f.lastMethod, f.lastGroup, f.lastLimit = "group", groupID, limit
	return append([]models.Post(nil), f.posts...), f.err
}

func (f *fakePostSource) SearchContent(_ context.Context, query string, limit int) ([]models.Post, error) {
	f.lastMethod, f.lastQuery, f.lastLimit = "search", query, limit
	return append([]models.Post(nil), f.posts...), f.err
}

func (f *fakePostSource) ListTopHelpful(_ context.Context, limit int) ([]models.Post, error) {
	f.lastMethod, f.lastLimit = "helpful", limit
	return append([]models.Post(nil), f.posts...), f.err
}

func emptyHydrator() *Hydrator {
	f := &fakeEngagement{}
	return newTestHydrator(f)
}

func boostedPost(id int64, createdAt time.Time, level int64, until time.Time) models.Post {
	return models.Post{
		ID:         id,
		AuthorID:   1,
		CreatedAt:  createdAt,
		BoostLevel: sql.NullInt64{Int64: level, Valid: true},
		BoostUntil: sql.NullTime{Time: until, Valid: true},
	}
}

func composedIDs(posts []HydratedPost) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestComposeBoostOrdering(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base.Add(5 * time.Minute)

	tests := []struct {
		name  string
		posts []models.Post
		want  []int64
	}{
		{
			name: "active boost outranks newer plain post",
			posts: []models.Post{
				{ID: 2, AuthorID: 1, CreatedAt: base.Add(time.Minute)},
				boostedPost(1, base, 2, base.Add(10*time.Minute)),
			},
			want: []int64{1, 2},
		},
		{
			name: "higher boost level wins regardless of age",
			posts: []models.Post{
				boostedPost(1, base.Add(time.Minute), 1, base.Add(time.Hour)),
				boostedPost(2, base, 3, base.Add(time.Hour)),
			},
			want: []int64{2, 1},
		},
		{
			name: "equal levels fall back to recency",
			posts: []models.Post{
				boostedPost(1, base, 2, base.Add(time.Hour)),
				boostedPost(2, base.Add(time.Minute), 2, base.Add(time.Hour)),
			},
			want: []int64{2, 1},
		},
		{
			name: "expired boost drops to the plain partition",
			posts: []models.Post{
				boostedPost(1, base, 3, base.Add(time.Minute)),
				{ID: 2, AuthorID: 1, CreatedAt: base.Add(2 * time.Minute)},
			},
			want: []int64{2, 1},
		},
		{
			name: "plain posts order by recency",
			posts: []models.Post{
				{ID: 1, AuthorID: 1, CreatedAt: base},
				{ID: 3, AuthorID: 1, CreatedAt: base.Add(2 * time.Minute)},
				{ID: 2, AuthorID: 1, CreatedAt: base.Add(time.Minute)},
			},
			want: []int64{3, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakePostSource{posts: tt.posts}
			c := NewComposer(source, emptyHydrator(), func() time.Time { return now }, zap.NewNop())

			got, err := c.Compose(context.Background(), GlobalScope(), 50)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			ids := composedIDs(got)
			if len(ids) != len(tt.want) {
				t.Fatalf("Compose() returned %d posts, want %d", len(ids), len(tt.want))
			}
			for i := range tt.want {
				if ids[i] != tt.want[i] {
					t.Fatalf("Compose() order = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestComposeGroupFeedBoostScenario(t *testing.T) {
	// Two posts in the same group: P plain, Q newer and boosted at level 2.
	// Composed while the boost window is open, Q leads.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := &fakePostSource{posts: []models.Post{
		{ID: 1, AuthorID: 1, CreatedAt: base, GroupID: sql.NullInt64{Int64: 7, Valid: true}},
		boostedPost(2, base.Add(time.Minute), 2, base.Add(10*time.Minute)),
	}}
	c := NewComposer(source, emptyHydrator(), func() time.Time { return base.Add(5 * time.Minute) }, zap.NewNop())

	got, err := c.Compose(context.Background(), GroupScope(7), 10)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if ids := composedIDs(got); len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Errorf("group feed order = %v, want [2 1]", composedIDs(got))
	}
}

func TestComposeOrderingIsDeterministic(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		boostedPost(1, base, 2, base.Add(time.Hour)),
		boostedPost(2, base, 2, base.Add(time.Hour)),
		{ID: 3, AuthorID: 1, CreatedAt: base},
		{ID: 4, AuthorID: 1, CreatedAt: base},
	}
	source := &fakePostSource{posts: posts}
	c := NewComposer(source, emptyHydrator(), func() time.Time { return base.Add(time.Minute) }, zap.NewNop())

	first, err := c.Compose(context.Background(), GlobalScope(), 50)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Compose(context.Background(), GlobalScope(), 50)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d order = %v, want %v", i, composedIDs(again), composedIDs(first))
			}
		}
	}
}

func TestComposeScopeDispatch(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("group scope passes group id", func(t *testing.T) {
		source := &fakePostSource{}
		c := NewComposer(source, emptyHydrator(), nil, zap.NewNop())
		if _, err := c.Compose(context.Background(), GroupScope(42), 10); err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if source.lastMethod != "group" || source.lastGroup != 42 || source.lastLimit != 10 {
			t.Errorf("dispatch = %s group=%d limit=%d, want group 42 10",
				source.lastMethod, source.lastGroup, source.lastLimit)
		}
	})

	t.Run("search scope trims query and keeps store order", func(t *testing.T) {
		// Store order: newest first. A boosted older post must not move up.
		source := &fakePostSource{posts: []models.Post{
			{ID: 2, AuthorID: 1, CreatedAt: base.Add(time.Minute), Content: "dog park"},
			boostedPost(1, base, 3, base.Add(time.Hour)),
		}}
		c := NewComposer(source, emptyHydrator(), func() time.Time { return base }, zap.NewNop())

		got, err := c.Compose(context.Background(), SearchScope("  dog park "), 20)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if source.lastMethod != "search" || source.lastQuery != "dog park" {
			t.Errorf("dispatch = %s query=%q, want search %q", source.lastMethod, source.lastQuery, "dog park")
		}
		if ids := composedIDs(got); ids[0] != 2 || ids[1] != 1 {
			t.Errorf("search order = %v, want store order [2 1]", ids)
		}
	})

	t.Run("helpful scope keeps store order", func(t *testing.T) {
		source := &fakePostSource{posts: []models.Post{
			{ID: 5, AuthorID: 1, HelpfulCount: 9, CreatedAt: base},
			boostedPost(6, base.Add(time.Minute), 3, base.Add(time.Hour)),
		}}
		c := NewComposer(source, emptyHydrator(), func() time.Time { return base }, zap.NewNop())

		got, err := c.Compose(context.Background(), TopHelpfulScope(), 5)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if source.lastMethod != "helpful" {
			t.Errorf("dispatch = %s, want helpful", source.lastMethod)
		}
		if ids := composedIDs(got); ids[0] != 5 || ids[1] != 6 {
			t.Errorf("helpful order = %v, want store order [5 6]", ids)
		}
	})
}

func TestComposeSpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	restore := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(restore)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := &fakePostSource{posts: []models.Post{
		{ID: 1, AuthorID: 1, CreatedAt: base},
		{ID: 2, AuthorID: 1, CreatedAt: base.Add(time.Minute)},
	}}
	c := NewComposer(source, emptyHydrator(), func() time.Time { return base }, zap.NewNop())

	if _, err := c.Compose(context.Background(), GlobalScope(), 25); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	var span sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() == "feed.compose" {
			span = s
		}
	}
	if span == nil {
		t.Fatal("no feed.compose span recorded")
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["feed.scope"].AsString(); got != "global" {
		t.Errorf("feed.scope attribute = %q, want %q", got, "global")
	}
	if got := attrs["feed.limit"].AsInt64(); got != 25 {
		t.Errorf("feed.limit attribute = %d, want 25", got)
	}
	if got := attrs["feed.candidates"].AsInt64(); got != 2 {
		t.Errorf("feed.candidates attribute = %d, want 2", got)
	}
}

func TestComposeSourceError(t *testing.T) {
	upstream := errors.New("connection refused")
	source := &fakePostSource{err: upstream}
	c := NewComposer(source, emptyHydrator(), nil, zap.NewNop())

	if _, err := c.Compose(context.Background(), GlobalScope(), 10); !errors.Is(err, upstream) {
		t.Errorf("Compose() error = %v, want wrapped upstream error", err)
	}
}
